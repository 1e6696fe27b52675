package api

import (
	"time"

	"github.com/chainsight/chainsight/pkg/paths"
)

// API request/response types.

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse reports server status and the loaded graph's shape.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	NodeCount int       `json:"nodeCount"`
	EdgeCount int       `json:"edgeCount"`
	Sessions  int       `json:"sessions"`
}

// DownstreamRequest asks which nodes a disruption at the given sources
// would reach.
type DownstreamRequest struct {
	SourceIDs       []string `json:"sourceIds" validate:"required,min=1,dive,required"`
	MaxDepth        int      `json:"maxDepth" validate:"min=0"`
	IncludeRevisits bool     `json:"includeRevisits"`
	WeightThreshold float64  `json:"weightThreshold" validate:"min=0"`
	CriticalTier    *int     `json:"criticalTier" validate:"omitempty,min=0"`
}

// UpstreamRequest asks which nodes feed into the given target.
type UpstreamRequest struct {
	TargetID        string  `json:"targetId" validate:"required"`
	MaxDepth        int     `json:"maxDepth" validate:"min=0"`
	IncludeRevisits bool    `json:"includeRevisits"`
	WeightThreshold float64 `json:"weightThreshold" validate:"min=0"`
	CriticalTier    *int    `json:"criticalTier" validate:"omitempty,min=0"`
}

// ImpactResponse carries a traced affected set.
type ImpactResponse struct {
	AffectedNodes []string       `json:"affectedNodes"`
	AffectedEdges []string       `json:"affectedEdges"`
	Depths        map[string]int `json:"depths"`
	CriticalPaths [][]string     `json:"criticalPaths"`
	TotalImpact   float64        `json:"totalImpact"`
	Time          string         `json:"time"`
}

// PathsRequest enumerates routes between two nodes.
type PathsRequest struct {
	SourceID string `json:"sourceId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
	MaxPaths int    `json:"maxPaths" validate:"min=0"`
	MaxDepth int    `json:"maxDepth" validate:"min=0"`
}

// PathsResponse lists every discovered path plus the preferred one.
type PathsResponse struct {
	Paths     [][]string         `json:"paths"`
	Truncated bool               `json:"truncated"`
	Shortest  []string           `json:"shortest,omitempty"`
	Metrics   *paths.PathMetrics `json:"metrics,omitempty"`
	Time      string             `json:"time"`
}

// SessionRequest starts or reconfigures a crisis session.
type SessionRequest struct {
	SourceID string `json:"sourceId" validate:"required"`
	Label    string `json:"label" validate:"max=256"`
}

// SessionResponse is the API view of one session.
type SessionResponse struct {
	ID                string  `json:"id"`
	State             string  `json:"state"`
	Label             string  `json:"label"`
	SourceID          string  `json:"sourceId"`
	AffectedNodes     int     `json:"affectedNodes"`
	AffectedEdges     int     `json:"affectedEdges"`
	CriticalPathCount int     `json:"criticalPathCount"`
	TotalImpact       float64 `json:"totalImpact"`
}

// SessionListResponse wraps the session collection.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Count    int               `json:"count"`
}
