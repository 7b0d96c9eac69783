package collide

// drive runs a traversal node to completion and returns its accumulated
// result. Each concrete node type owns its own recursion (see node.go);
// drive is the single entry point every dispatch-matrix branch in
// matrix.go funnels through (it is called from collide.go), matching §4.3's
// driver contract.
func drive(n node, req CollisionRequest) (*CollisionResult, error) {
	result := &CollisionResult{}
	if err := n.drive(result, req); err != nil {
		return nil, err
	}
	return result, nil
}
