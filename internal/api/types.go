package api

import (
	"errors"
	"fmt"
)

// SearchResult is one physical asset instance matching a search needle.
type SearchResult struct {
	ID      string `json:"id"`
	Index   int    `json:"index"`
	Archive string `json:"archive"`
	Size    int64  `json:"size"`
}

// AssetInfo is the extracted metadata of one physical asset.
type AssetInfo struct {
	Type     string `json:"type"`
	Magic    string `json:"magic"`
	Sections int    `json:"sections"`
}

// ModelType is the asset type the model viewer can display.
const ModelType = "Model"

// IsModel reports whether the asset can be handed to the model viewer.
func (a AssetInfo) IsModel() bool {
	return a.Type == ModelType
}

// Error is an application-level failure: the server answered with
// error:true and a message.
type Error struct {
	Endpoint string
	Message  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed", e.Endpoint)
	}
	return e.Message
}

// IsAppError reports whether err carries a server-reported failure.
func IsAppError(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr)
}

type loadTOCRequest struct {
	TOCPath string `json:"toc_path"`
}

type searchRequest struct {
	Needle string `json:"needle"`
}

type extractRequest struct {
	Index int `json:"index"`
}

// status is the common part of every response.
type status struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
}

type wireTOC struct {
	Archives int `json:"archives"`
	Assets   int `json:"assets"`
	Tree     any `json:"tree"`
}

type loadTOCResponse struct {
	status
	TOC *wireTOC `json:"toc,omitempty"`
}

type searchResponse struct {
	status
	Entries []SearchResult `json:"entries"`
}

type extractResponse struct {
	status
	Asset *AssetInfo `json:"asset,omitempty"`
}

func (s status) outcome() status { return s }
