package events

import "time"

// FlowCreated is raised when a new flow is opened for the first time
type FlowCreated struct {
	BaseEvent
	FlowID string `json:"flowId"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// NewFlowCreated builds a FlowCreated event
func NewFlowCreated(flowID, userID, name string, at time.Time) FlowCreated {
	return FlowCreated{
		BaseEvent: BaseEvent{AggregateID: flowID, EventType: "flow.created", Timestamp: at},
		FlowID:    flowID,
		UserID:    userID,
		Name:      name,
	}
}

// NodeAdded is raised when a node enters the graph, by palette drop or duplicate
type NodeAdded struct {
	BaseEvent
	FlowID   string `json:"flowId"`
	NodeID   string `json:"nodeId"`
	NodeType string `json:"nodeType"`
}

// NewNodeAdded builds a NodeAdded event
func NewNodeAdded(flowID, nodeID, nodeType string, at time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent: BaseEvent{AggregateID: flowID, EventType: "flow.node_added", Timestamp: at},
		FlowID:    flowID,
		NodeID:    nodeID,
		NodeType:  nodeType,
	}
}

// NodeRemoved is raised after a node and its incident edges were deleted
type NodeRemoved struct {
	BaseEvent
	FlowID       string `json:"flowId"`
	NodeID       string `json:"nodeId"`
	EdgesRemoved int    `json:"edgesRemoved"`
}

// NewNodeRemoved builds a NodeRemoved event
func NewNodeRemoved(flowID, nodeID string, edgesRemoved int, at time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent:    BaseEvent{AggregateID: flowID, EventType: "flow.node_removed", Timestamp: at},
		FlowID:       flowID,
		NodeID:       nodeID,
		EdgesRemoved: edgesRemoved,
	}
}

// NodesConnected is raised when an edge is created between two nodes
type NodesConnected struct {
	BaseEvent
	FlowID   string `json:"flowId"`
	EdgeID   string `json:"edgeId"`
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// NewNodesConnected builds a NodesConnected event
func NewNodesConnected(flowID, edgeID, sourceID, targetID string, at time.Time) NodesConnected {
	return NodesConnected{
		BaseEvent: BaseEvent{AggregateID: flowID, EventType: "flow.nodes_connected", Timestamp: at},
		FlowID:    flowID,
		EdgeID:    edgeID,
		SourceID:  sourceID,
		TargetID:  targetID,
	}
}

// EdgeRemoved is raised when an edge is disconnected
type EdgeRemoved struct {
	BaseEvent
	FlowID string `json:"flowId"`
	EdgeID string `json:"edgeId"`
}

// NewEdgeRemoved builds an EdgeRemoved event
func NewEdgeRemoved(flowID, edgeID string, at time.Time) EdgeRemoved {
	return EdgeRemoved{
		BaseEvent: BaseEvent{AggregateID: flowID, EventType: "flow.edge_removed", Timestamp: at},
		FlowID:    flowID,
		EdgeID:    edgeID,
	}
}

// FlowSaved is raised after a snapshot was persisted
type FlowSaved struct {
	BaseEvent
	FlowID    string `json:"flowId"`
	NodeCount int    `json:"nodeCount"`
	EdgeCount int    `json:"edgeCount"`
}

// NewFlowSaved builds a FlowSaved event
func NewFlowSaved(flowID string, nodeCount, edgeCount int, at time.Time) FlowSaved {
	return FlowSaved{
		BaseEvent: BaseEvent{AggregateID: flowID, EventType: "flow.saved", Timestamp: at},
		FlowID:    flowID,
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}
