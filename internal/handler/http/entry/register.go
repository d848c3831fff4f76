package entry

import (
	"net/http"
)

// Register registers the entry routes with mux.
func Register(mux *http.ServeMux, svc Looker) {
	mux.Handle("GET /entries/{id}", GetHandler{Svc: svc})
	mux.Handle("GET /entries/{id}/fasta", FASTAHandler{Svc: svc})
}
