package voyage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// rewriter adapts OpenAI embedding request bodies to Voyage field names.
// It satisfies openai.HTTPDoer.
type rewriter struct {
	next      *http.Client
	inputType string
}

func (r *rewriter) Do(req *http.Request) (*http.Response, error) {
	if req.Body == nil || !strings.HasSuffix(req.URL.Path, "/embeddings") {
		return r.next.Do(req)
	}

	raw, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	body, err := voyageBody(raw, r.inputType)
	if err != nil {
		return nil, err
	}

	out := req.Clone(req.Context())
	out.Body = io.NopCloser(bytes.NewReader(body))
	out.ContentLength = int64(len(body))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return r.next.Do(out)
}

// voyageBody renames dimensions to output_dimension, drops fields Voyage
// rejects and sets input_type.
func voyageBody(raw []byte, inputType string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode embedding request: %w", err)
	}
	if dim, ok := fields["dimensions"]; ok {
		fields["output_dimension"] = dim
		delete(fields, "dimensions")
	}
	delete(fields, "encoding_format")
	delete(fields, "user")
	if inputType != "" {
		it, err := json.Marshal(inputType)
		if err != nil {
			return nil, fmt.Errorf("encode input_type: %w", err)
		}
		fields["input_type"] = it
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode embedding request: %w", err)
	}
	return body, nil
}
