package handlers

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed public/*
var clientAssets embed.FS

// StaticHandler serves the embedded client application.
type StaticHandler struct {
	fileServer http.Handler
}

func NewStaticHandler() *StaticHandler {
	clientFS, err := fs.Sub(clientAssets, "public")
	if err != nil {
		panic("failed to get public subdirectory: " + err.Error())
	}
	return &StaticHandler{fileServer: http.FileServer(http.FS(clientFS))}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.fileServer.ServeHTTP(w, r)
}
