package sectlink

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// The links line carries a JSON document embedded in the text.
// Only a flat array of strings is accepted.
const linksSchema = `{
	"type": "array",
	"items": {"type": "string"}
}`

var linksValidator = mustCompileLinksSchema()

func mustCompileLinksSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("links.json", strings.NewReader(linksSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("links.json")
}

// decodeLinks parses the value of a links line into the list of section names.
func decodeLinks(raw string) ([]string, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("links value is not valid JSON: %v", err)
	}

	if err := linksValidator.Validate(value); err != nil {
		return nil, fmt.Errorf("links value must be an array of strings: %s", validationIssues(err))
	}

	items := value.([]any)
	links := make([]string, 0, len(items))
	for _, item := range items {
		links = append(links, item.(string))
	}

	return links, nil
}

// validationIssues flattens the leaves of a schema validation error.
func validationIssues(err error) string {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}

	issues := []string{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			location := node.InstanceLocation
			if location == "" {
				location = "#"
			} else if !strings.HasPrefix(location, "#") {
				location = "#" + location
			}
			issues = append(issues, location+": "+strings.TrimSpace(node.Message))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)

	return strings.Join(issues, "; ")
}
