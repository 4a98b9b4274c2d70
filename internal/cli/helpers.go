package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopx-dev/templatize/internal/state"
	"go.uber.org/zap"
)

func IsCorruptStateError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

// loadState reads the manifest for rootPath. A corrupt manifest is replaced by
// an empty one with a warning.
func loadState(rootPath string) (*state.State, bool, error) {
	st, err := state.Load(state.Dir(rootPath))
	if err != nil {
		if IsCorruptStateError(err) {
			logger.Warn("corrupt state file detected; treating all pages as unconverted", zap.Error(err))
			return state.NewState(), true, nil
		}
		return nil, false, fmt.Errorf("failed to load state: %w", err)
	}
	return st, false, nil
}
