package schema

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/erraggy/recordcheck/recorderrors"
)

// metaBaseURL anchors composed documents so relative $refs resolve between
// them without any network or filesystem access.
const metaBaseURL = "mem://recordcheck/"

// metaValidate compiles every composed document with a JSON Schema
// 2020-12 compiler, which checks each one against the meta-schema.
func (l *loader) metaValidate(rootName string) error {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)

	for _, name := range l.order {
		doc := l.docs[name]

		var raw any
		if err := doc.root.Decode(&raw); err != nil {
			return &recorderrors.ParseError{Path: name, Message: "decoding schema document", Cause: err}
		}
		if m, ok := raw.(map[string]any); ok {
			// the dialect is fixed by DefaultDraft; a $schema URL would trigger a fetch
			delete(m, "$schema")
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return &recorderrors.SchemaError{Schema: name, Message: "document is not representable as JSON", Cause: err}
		}
		inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return &recorderrors.ParseError{Path: name, Message: "re-reading document as JSON", Cause: err}
		}
		if err := c.AddResource(metaBaseURL+name, inst); err != nil {
			return &recorderrors.SchemaError{Schema: name, Message: "registering document for meta validation", Cause: err}
		}
	}

	if _, err := c.Compile(metaBaseURL + rootName); err != nil {
		return &recorderrors.SchemaError{Schema: rootName, Message: "document is not a valid JSON Schema", Cause: err}
	}
	l.logger.Debug("meta validation passed", "documents", len(l.order))
	return nil
}
