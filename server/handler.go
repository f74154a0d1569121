package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"arbor/feature"
	"arbor/logging"
	"arbor/tree"
)

const maxBodyBytes = 4 * 1024 * 1024

type classifyRequest struct {
	Samples []map[string]float64 `json:"samples"`
}

type classifyResponse struct {
	Labels []string `json:"labels"`
}

/*
NewClassifyHandler takes the service configuration and a classifier
tree and returns an http.Handler that answers POST requests with a
JSON body listing samples as feature-to-value objects:

	{"samples": [{"weight": 6.0, "height": 1.2}]}

with a JSON body listing the label classified for each sample, in
request order. Samples are classified concurrently: classification
only reads the tree.
*/
func NewClassifyHandler(cfg *Config, t *tree.Tree) http.Handler {
	return &classifyHandler{cfg: cfg, tree: t}
}

type classifyHandler struct {
	cfg  *Config
	tree *tree.Tree
}

func (h *classifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debugf("classify: rejected %v request", r.Method)
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		logger.Debugf("classify: decoding request: %v", err)
		_, _ = fmt.Fprint(w, `{"error": "failed to decode request json"}`)
		return
	}
	if len(req.Samples) > h.cfg.MaxBatchLen {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprintf(w, `{"error": "too many samples, max allowed is %d"}`, h.cfg.MaxBatchLen)
		return
	}

	labels := make([]string, len(req.Samples))
	errGrp := errgroup.Group{}
	for i, sample := range req.Samples {
		i, sample := i, sample
		errGrp.Go(func() error {
			label, err := h.tree.Classify(feature.NewVector(sample))
			if err != nil {
				return fmt.Errorf("classifying sample %d: %v", i, err)
			}
			labels[i] = label
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		logger.Debugf("classify: %v", err)
		_, _ = fmt.Fprintf(w, `{"error": %q}`, err.Error())
		return
	}

	body, err := json.Marshal(classifyResponse{Labels: labels})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Errorf("classify: encoding response: %v", err)
		_, _ = fmt.Fprint(w, `{"error": "failed to encode response json"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
