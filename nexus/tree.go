package nexus

import "fmt"

// TreeNode is the report rendering of an AST: a label plus optional
// children. Literals render as their raw value and identifiers as their bare
// name; composite nodes use upper-case structural labels.
type TreeNode struct {
	Label    string      `json:"label"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Tree renders a parsed AST for reporting. A nil node yields nil.
func Tree(node Node) *TreeNode {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		t := &TreeNode{Label: "PROGRAM"}
		t.Children = append(t.Children, treeList(n.Declarations)...)
		t.Children = append(t.Children, treeList(n.Statements)...)
		return t

	case *Declaration:
		t := &TreeNode{Label: "DECL"}
		for i, name := range n.Identifiers {
			child := &TreeNode{Label: fmt.Sprintf("VAR_DECL(%s %s)", n.DataType, name)}
			if i < len(n.Initializers) && n.Initializers[i] != nil {
				child.Children = append(child.Children, Tree(n.Initializers[i]))
			}
			t.Children = append(t.Children, child)
		}
		return t

	case *Assignment:
		t := &TreeNode{Label: fmt.Sprintf("ASSIGN(%s)", n.Identifier)}
		appendTree(t, n.Expression)
		return t

	case *BinaryOp:
		t := &TreeNode{Label: fmt.Sprintf("EXPR(%s)", n.Operation)}
		appendTree(t, n.Left)
		appendTree(t, n.Right)
		return t

	case *UnaryOp:
		t := &TreeNode{Label: fmt.Sprintf("UNARY(%s)", n.Operation)}
		appendTree(t, n.Operand)
		return t

	case *Literal:
		return &TreeNode{Label: n.Value}

	case *Identifier:
		return &TreeNode{Label: n.Name}

	case *FunctionCall:
		t := &TreeNode{Label: fmt.Sprintf("CALL(%s)", n.FunctionName)}
		t.Children = append(t.Children, treeList(n.Arguments)...)
		return t

	case *IfStatement:
		t := &TreeNode{Label: "IF"}
		appendTree(t, n.Condition)
		t.Children = append(t.Children, &TreeNode{Label: "THEN", Children: treeList(n.ThenBranch)})
		if len(n.ElseBranch) > 0 {
			t.Children = append(t.Children, &TreeNode{Label: "ELSE", Children: treeList(n.ElseBranch)})
		}
		return t

	case *WhileLoop:
		t := &TreeNode{Label: "WHILE"}
		appendTree(t, n.Condition)
		t.Children = append(t.Children, &TreeNode{Label: "BODY", Children: treeList(n.Body)})
		return t

	case *ForLoop:
		t := &TreeNode{Label: "FOR"}
		appendTree(t, n.Initialization)
		appendTree(t, n.Condition)
		appendTree(t, n.Increment)
		t.Children = append(t.Children, &TreeNode{Label: "BODY", Children: treeList(n.Body)})
		return t

	case *ReturnStatement:
		t := &TreeNode{Label: "RETURN"}
		appendTree(t, n.Expression)
		return t

	case *Function:
		t := &TreeNode{Label: fmt.Sprintf("FUNC(%s)", n.Name)}
		t.Children = append(t.Children, treeList(n.Parameters)...)
		t.Children = append(t.Children, treeList(n.Body)...)
		return t
	}

	return nil
}

func appendTree(t *TreeNode, node Node) {
	if child := Tree(node); child != nil {
		t.Children = append(t.Children, child)
	}
}

func treeList(nodes []Node) []*TreeNode {
	var out []*TreeNode
	for _, n := range nodes {
		if child := Tree(n); child != nil {
			out = append(out, child)
		}
	}
	return out
}
