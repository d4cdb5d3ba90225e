package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chunpat/life-pulse-ai/pkg/service/objectstore"
	"github.com/chunpat/life-pulse-ai/pkg/utils/errutil"
	"github.com/chunpat/life-pulse-ai/pkg/utils/safe"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// uploadHandler stores a log image and returns its public URL
func uploadHandler(store objectstore.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid multipart form"), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "image field is required"), http.StatusBadRequest)
			return
		}
		defer safe.Close(r.Context(), file)

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		url, err := store.Put(r.Context(), header.Filename, contentType, file)
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusCreated, map[string]string{"url": url})
	}
}
