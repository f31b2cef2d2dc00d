// Package check validates a stored collection blob without modifying it.
//
// Loads silently fall back to an empty collection when the blob is
// malformed, so check is how a user finds out what is actually wrong with
// their data: structural problems are caught against an embedded JSON
// Schema, semantic ones (duplicate identifiers, blank names and titles) by
// direct inspection.
package check

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/maelko/binder/internal/model"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

var collectionSchema = jsonschema.MustCompileString("schema.json", schemaJSON)

// Finding is a single problem discovered in the stored blob.
type Finding struct {
	Path    string // location within the collection, empty for whole-blob problems
	Message string
}

func (f Finding) String() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

// Result collects the findings for one blob.
type Result struct {
	Findings []Finding
}

// OK reports whether the blob passed every check.
func (r *Result) OK() bool {
	return len(r.Findings) == 0
}

func (r *Result) add(path, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Blob checks a stored collection blob. Structural findings come from the
// embedded schema; when the blob also decodes, semantic findings are added
// on top.
func Blob(data []byte) *Result {
	result := &Result{}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.add("", "not valid JSON: %v", err)
		return result
	}

	if err := collectionSchema.Validate(doc); err != nil {
		appendSchemaFindings(result, err)
	}

	c, err := model.Decode(data)
	if err != nil {
		// Schema findings above explain why; nothing more to inspect.
		return result
	}
	checkSemantics(result, c)

	return result
}

// checkSemantics flags problems a structurally valid collection can still
// carry: identifiers that collide or are empty, and blank display text.
func checkSemantics(result *Result, c model.Collection) {
	folderIDs := make(map[string]int)
	for i, folder := range c {
		path := fmt.Sprintf("[%d]", i)

		if folder.ID == "" {
			result.add(path+".id", "empty folder identifier")
		} else if prev, ok := folderIDs[folder.ID]; ok {
			result.add(path+".id", "duplicate folder identifier %q, first used by [%d]", folder.ID, prev)
		} else {
			folderIDs[folder.ID] = i
		}

		if strings.TrimSpace(folder.Name) == "" {
			result.add(path+".name", "empty folder name")
		}

		itemIDs := make(map[string]int)
		for j, item := range folder.Items {
			itemPath := fmt.Sprintf("%s.items[%d]", path, j)

			if item.ID == "" {
				result.add(itemPath+".id", "empty item identifier")
			} else if prev, ok := itemIDs[item.ID]; ok {
				result.add(itemPath+".id", "duplicate item identifier %q, first used by items[%d]", item.ID, prev)
			} else {
				itemIDs[item.ID] = j
			}

			if strings.TrimSpace(item.Title) == "" {
				result.add(itemPath+".title", "empty item title")
			}
		}
	}
}

func appendSchemaFindings(result *Result, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.add("", "%v", err)
		return
	}
	collectSchemaFindings(result, ve)
}

// collectSchemaFindings walks to the leaf causes, which carry the specific
// messages worth showing.
func collectSchemaFindings(result *Result, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.add(pointerToPath(err.InstanceLocation), "%s", err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaFindings(result, cause)
	}
}

// pointerToPath converts a JSON pointer like "/2/items/0/title" into the
// bracketed form the findings use, "[2].items[0].title".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
