// Package convert serves the fuel-economy conversion API.
package convert

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware"
	"github.com/mandalnilabja/mpgconverter/internal/usage"
)

// maxBodyBytes bounds POST bodies; a conversion request is a few dozen bytes.
const maxBodyBytes = 64 << 10

// Handlers holds the dependencies for conversion HTTP handlers.
type Handlers struct {
	DefaultUnit conversion.Unit
	Recorder    *usage.Recorder
}

// New creates conversion handlers. rec may be nil to skip usage recording.
func New(defaultUnit conversion.Unit, rec *usage.Recorder) *Handlers {
	return &Handlers{DefaultUnit: defaultUnit, Recorder: rec}
}

// Request is a conversion request as read from the query or body.
type Request struct {
	Value  string
	Unit   string
	Source string
}

// Response is returned for every conversion, valid or not.
type Response struct {
	Input   string            `json:"input" msgpack:"input"`
	Unit    string            `json:"unit" msgpack:"unit"`
	Valid   bool              `json:"valid" msgpack:"valid"`
	Error   string            `json:"error,omitempty" msgpack:"error,omitempty"`
	Results conversion.Result `json:"results" msgpack:"results"`
}

// Convert handles GET and POST /api/convert.
// Bad input still yields 200 with an all-zero result; only an unreadable
// POST body is a client error.
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := readRequest(w, r)
	if err != nil {
		shared.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, unit, convErr := h.evaluate(req)

	shared.WriteNegotiated(w, r, resp, http.StatusOK)

	h.Recorder.Record(usage.Event{
		RequestID:  middleware.GetRequestID(r.Context()),
		Unit:       unit,
		Channel:    channel(req.Source),
		Err:        convErr,
		StatusCode: http.StatusOK,
		Start:      start,
	})
}

// evaluate resolves the unit and runs the conversion.
func (h *Handlers) evaluate(req Request) (Response, conversion.Unit, error) {
	resp := Response{Input: req.Value}

	unit := h.DefaultUnit
	if strings.TrimSpace(req.Unit) != "" {
		parsed, err := conversion.ParseUnit(req.Unit)
		if err != nil {
			resp.Unit = req.Unit
			resp.Error = err.Error()
			resp.Results = conversion.Zero()
			return resp, conversion.Unit(req.Unit), err
		}
		unit = parsed
	}
	resp.Unit = string(unit)

	result, err := conversion.Evaluate(req.Value, unit)
	resp.Results = result
	resp.Valid = err == nil
	if err != nil {
		resp.Error = err.Error()
	}
	return resp, unit, err
}

// Units handles GET /api/units.
func (h *Handlers) Units(w http.ResponseWriter, r *http.Request) {
	shared.WriteNegotiated(w, r, map[string]any{
		"units":        conversion.Catalog(),
		"default_unit": h.DefaultUnit,
		"precision":    conversion.Precision,
	}, http.StatusOK)
}

// readRequest collects value and unit from the query string or the POST body.
func readRequest(w http.ResponseWriter, r *http.Request) (Request, error) {
	q := r.URL.Query()
	req := Request{
		Value:  q.Get("value"),
		Unit:   q.Get("unit"),
		Source: q.Get("source"),
	}
	if r.Method != http.MethodPost {
		return req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return req, errors.New("invalid form body")
		}
		req.Value = r.PostForm.Get("value")
		req.Unit = r.PostForm.Get("unit")
		if s := r.PostForm.Get("source"); s != "" {
			req.Source = s
		}
	default:
		var body struct {
			Value  any    `json:"value"`
			Unit   string `json:"unit"`
			Source string `json:"source"`
		}
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return req, errors.New("invalid request body")
		}
		// The form sends text, API clients may send a bare number.
		switch v := body.Value.(type) {
		case string:
			req.Value = v
		case json.Number:
			req.Value = v.String()
		case nil:
			req.Value = ""
		default:
			return req, errors.New("value must be a string or number")
		}
		req.Unit = body.Unit
		if body.Source != "" {
			req.Source = body.Source
		}
	}
	return req, nil
}

func channel(source string) string {
	if source == storage.ChannelForm {
		return storage.ChannelForm
	}
	return storage.ChannelAPI
}
