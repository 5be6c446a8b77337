package app

import (
	"encoding/json"

	"go.trai.ch/pnp/internal/core/domain"
)

// Reply is one resolver answer, encoded as the JSON array [error, resolution].
// Both are null when the request is left to the host.
type Reply struct {
	Error      *domain.ResolutionError
	Resolution *string
}

// NewReply shapes a resolution outcome.
func NewReply(resolved string, ok bool, err error) Reply {
	if err != nil {
		return Reply{Error: domain.AsResolutionError(err)}
	}
	if !ok {
		return Reply{}
	}
	return Reply{Resolution: &resolved}
}

// MarshalJSON implements json.Marshaler.
func (r Reply) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Error, r.Resolution})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Reply) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Reply{}
	if len(raw[0]) > 0 && string(raw[0]) != "null" {
		r.Error = &domain.ResolutionError{}
		if err := json.Unmarshal(raw[0], r.Error); err != nil {
			return err
		}
	}
	if len(raw[1]) > 0 && string(raw[1]) != "null" {
		if err := json.Unmarshal(raw[1], &r.Resolution); err != nil {
			return err
		}
	}
	return nil
}
