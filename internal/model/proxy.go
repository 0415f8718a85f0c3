package model

import "encoding/json"

// ChatRequest is forwarded verbatim to the upstream chat service.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries whatever the upstream bot answered. The upstream
// payload is loosely typed, so extra fields are kept as raw JSON.
type ChatResponse struct {
	Response string                     `json:"response"`
	Extra    map[string]json.RawMessage `json:"-"`
}

func (r *ChatResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["response"]; ok {
		if err := json.Unmarshal(v, &r.Response); err != nil {
			return err
		}
		delete(raw, "response")
	}
	r.Extra = raw
	return nil
}

func (r ChatResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+1)
	for k, v := range r.Extra {
		out[k] = v
	}
	b, err := json.Marshal(r.Response)
	if err != nil {
		return nil, err
	}
	out["response"] = b
	return json.Marshal(out)
}

// ForecastDay is one day of the upstream prediction payload.
type ForecastDay map[string]any

// ForecastResponse wraps the upstream prediction list.
type ForecastResponse struct {
	Data []ForecastDay `json:"data"`
}
