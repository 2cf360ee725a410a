package deploy

import (
	"encoding/json"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
)

// toResource converts one typed configgen struct into the generic map
// shape the Router API Client and diffing logic operate on, via its json
// tags (which already match the router's field names one-to-one).
func toResource(v any) (routerapi.Resource, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithCode(code.ErrConfigGenerationFailed, "encode desired resource: %v", err)
	}
	var out routerapi.Resource
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.WithCode(code.ErrConfigGenerationFailed, "decode desired resource: %v", err)
	}
	return out, nil
}

func toResources[T any](items []T) ([]routerapi.Resource, error) {
	out := make([]routerapi.Resource, 0, len(items))
	for _, item := range items {
		r, err := toResource(item)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
