package polarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/mat"
)

// teiRuntime serves a sequence-classification model from a
// text-embeddings-inference server.
type teiRuntime struct {
	endpoint string
	labels   []string
	index    map[string]int // label -> column
	client   *http.Client
	limiter  *rate.Limiter
}

// LoadTEI is the Loader for the "tei" runtime. It asks the server at
// req.Options.Endpoint (or AcceleratorEndpoint, when an accelerator is
// requested and healthy) which model it serves, and fails with a
// *ConfigError if that is not req.ModelID or the model is not a classifier.
func LoadTEI(ctx context.Context, req LoadRequest) (Runtime, error) {
	opts := req.Options
	client := &http.Client{Timeout: opts.Timeout}

	endpoint := opts.Endpoint
	device := CPU
	if req.Device == Accelerator {
		if opts.AcceleratorEndpoint != "" && teiHealthy(ctx, client, opts.AcceleratorEndpoint) {
			endpoint, device = opts.AcceleratorEndpoint, Accelerator
		} else {
			Logger().Debug("accelerator unavailable, using cpu",
				"accelerator_endpoint", opts.AcceleratorEndpoint)
		}
	}
	endpoint = strings.TrimRight(endpoint, "/")

	info, err := teiInfo(ctx, client, endpoint)
	if err != nil {
		return nil, err
	}
	if info.ModelID != req.ModelID {
		return nil, &ConfigError{
			Field:  "neural_backend_options.endpoint",
			Value:  endpoint,
			Reason: fmt.Sprintf("server is serving %q, want %q", info.ModelID, req.ModelID),
		}
	}
	labels, err := info.labels()
	if err != nil {
		return nil, &ConfigError{Field: "neural_backend_options.endpoint", Value: endpoint, Err: err}
	}

	rt := &teiRuntime{
		endpoint: endpoint,
		labels:   labels,
		index:    make(map[string]int, len(labels)),
		client:   client,
	}
	for i, l := range labels {
		rt.index[l] = i
	}
	if opts.RequestsPerSecond > 0 {
		rt.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	Logger().Debug("tei runtime ready", "endpoint", endpoint, "device", device, "labels", labels)
	return rt, nil
}

func (rt *teiRuntime) Labels() []string { return rt.labels }

func (rt *teiRuntime) Close() error {
	rt.client.CloseIdleConnections()
	return nil
}

// Logits implements Runtime. Without padding, texts of different lengths
// cannot share a batch, so each text is sent on its own.
func (rt *teiRuntime) Logits(ctx context.Context, req InferenceRequest) (*mat.Dense, error) {
	if len(req.Texts) == 0 {
		return nil, fmt.Errorf("tei: empty batch")
	}
	out := mat.NewDense(len(req.Texts), len(rt.labels), nil)

	batches := [][]string{req.Texts}
	if !req.Padding && len(req.Texts) > 1 {
		batches = make([][]string, len(req.Texts))
		for i, t := range req.Texts {
			batches[i] = []string{t}
		}
	}

	row := 0
	for _, batch := range batches {
		results, err := rt.predict(ctx, batch, req.Truncation)
		if err != nil {
			return nil, err
		}
		if len(results) != len(batch) {
			return nil, fmt.Errorf("tei: got %d results for %d inputs", len(results), len(batch))
		}
		for _, scores := range results {
			if len(scores) != len(rt.labels) {
				return nil, fmt.Errorf("tei: got %d scores for %d labels", len(scores), len(rt.labels))
			}
			for _, s := range scores {
				col, ok := rt.index[s.Label]
				if !ok {
					return nil, fmt.Errorf("tei: unknown label %q", s.Label)
				}
				out.Set(row, col, s.Score)
			}
			row++
		}
	}
	return out, nil
}

func (rt *teiRuntime) predict(ctx context.Context, texts []string, truncate bool) ([][]teiScore, error) {
	if rt.limiter != nil {
		if err := rt.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	inputs := make([][]string, len(texts))
	for i, t := range texts {
		inputs[i] = []string{t}
	}
	jsonBody, err := json.Marshal(teiPredictRequest{Inputs: inputs, RawScores: true, Truncate: truncate})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, rt.endpoint+"/predict", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	body, err := doTEI(rt.client, httpReq)
	if err != nil {
		return nil, err
	}

	var results [][]teiScore
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return results, nil
}

func teiInfo(ctx context.Context, client *http.Client, endpoint string) (*teiInfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/info", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	body, err := doTEI(client, req)
	if err != nil {
		return nil, err
	}

	var info teiInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("parse info: %w", err)
	}
	return &info, nil
}

func teiHealthy(ctx context.Context, client *http.Client, endpoint string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(endpoint, "/")+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func doTEI(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tei request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tei error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

type teiPredictRequest struct {
	Inputs    [][]string `json:"inputs"`
	RawScores bool       `json:"raw_scores"`
	Truncate  bool       `json:"truncate"`
}

type teiScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type teiInfoResponse struct {
	ModelID   string `json:"model_id"`
	ModelType struct {
		Classifier *struct {
			ID2Label map[string]string `json:"id2label"`
		} `json:"classifier"`
	} `json:"model_type"`
}

// labels returns id2label in index order.
func (info *teiInfoResponse) labels() ([]string, error) {
	c := info.ModelType.Classifier
	if c == nil || len(c.ID2Label) == 0 {
		return nil, fmt.Errorf("model %q is not a sequence classifier", info.ModelID)
	}

	labels := make([]string, len(c.ID2Label))
	for id, label := range c.ID2Label {
		i, err := strconv.Atoi(id)
		if err != nil || i < 0 || i >= len(labels) {
			return nil, fmt.Errorf("bad id2label entry %q: %q", id, label)
		}
		labels[i] = label
	}
	return labels, nil
}
