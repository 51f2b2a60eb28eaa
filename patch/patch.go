// Package patch applies RFC6902 operations to the filled-fields document.
// Inferred values are merged into conversation state as patch operations so
// the document is never half-mutated when an application fails.
package patch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

const (
	OpAdd     = "add"
	OpReplace = "replace"
	OpRemove  = "remove"
)

// Operation is a single RFC6902 patch operation.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Apply runs ops against current through a JSON round trip and returns the
// patched document. The input document is never mutated; on any failure the
// zero value and an error are returned.
func Apply[T any](current T, ops []Operation) (T, error) {
	var zero T

	if len(ops) == 0 {
		return current, nil
	}

	currentJSON, err := sonic.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("marshal current document: %w", err)
	}

	ops = FixOperations(currentJSON, ops)

	patchJSON, err := sonic.Marshal(ops)
	if err != nil {
		return zero, fmt.Errorf("marshal patch operations: %w", err)
	}

	p, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return zero, fmt.Errorf("decode patch: %w", err)
	}

	modified, err := p.Apply(currentJSON)
	if err != nil {
		return zero, fmt.Errorf("apply patch: %w", err)
	}

	var result T
	if err := sonic.Unmarshal(modified, &result); err != nil {
		return zero, fmt.Errorf("patched document has invalid shape: %w", err)
	}

	return result, nil
}

// FixOperations reconciles ops against the current document: a replace of a
// missing path becomes an add, and a remove of a missing path is dropped.
func FixOperations(currentJSON []byte, ops []Operation) []Operation {
	var doc any
	if err := sonic.Unmarshal(currentJSON, &doc); err != nil {
		return ops
	}

	fixed := make([]Operation, 0, len(ops))
	for _, op := range ops {
		switch op.Op {
		case OpReplace:
			if !pathExists(doc, op.Path) {
				op.Op = OpAdd
			}
			fixed = append(fixed, op)
		case OpRemove:
			if pathExists(doc, op.Path) {
				fixed = append(fixed, op)
			}
		default:
			fixed = append(fixed, op)
		}
	}

	return fixed
}

func pathExists(doc any, path string) bool {
	if path == "" {
		return true
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}

	tokens := strings.Split(path[1:], "/")
	cur := doc
	for _, token := range tokens {
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")
		switch node := cur.(type) {
		case map[string]any:
			value, ok := node[token]
			if !ok {
				return false
			}
			cur = value
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(node) {
				return false
			}
			cur = node[index]
		default:
			return false
		}
	}

	return true
}
