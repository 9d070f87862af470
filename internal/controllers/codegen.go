package controllers

import (
	"encoding/json"
	"strings"
)

// EmptyModuleSource is the module emitted when there is nothing to register.
const EmptyModuleSource = "export default [];\n"

// GenerateSource renders the synthetic module for defs:
//
//	import nested__hello0 from "/app/controllers/nested/hello_controller.js";
//
//	export default [
//	  {identifier: "nested--hello", controllerConstructor: nested__hello0},
//	];
//
// Paths are emitted as given; only string-literal escaping is applied.
func GenerateSource(defs []Definition) string {
	if len(defs) == 0 {
		return EmptyModuleSource
	}

	var b strings.Builder
	for _, def := range defs {
		b.WriteString("import ")
		b.WriteString(def.BindingName)
		b.WriteString(" from ")
		b.WriteString(jsString(def.Path))
		b.WriteString(";\n")
	}

	b.WriteString("\nexport default [\n")
	for _, def := range defs {
		b.WriteString("  {identifier: ")
		b.WriteString(jsString(def.Identifier))
		b.WriteString(", controllerConstructor: ")
		b.WriteString(def.BindingName)
		b.WriteString("},\n")
	}
	b.WriteString("];\n")

	return b.String()
}

// jsString quotes s as a JavaScript string literal. JSON strings are valid
// JavaScript, and backslashes in Windows paths come out escaped.
func jsString(s string) string {
	out, _ := json.Marshal(s) // never fails for a string
	return string(out)
}
