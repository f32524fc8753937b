package parser_test

import (
	"fmt"

	"github.com/matzehuels/uxl/pkg/errors"
	"github.com/matzehuels/uxl/pkg/parser"
)

func ExampleParse() {
	text := `UXL:1.0
300x200
P\home\Home
  B\Go\GOTO:next
P\next\Next`

	doc, err := parser.Parse(text, parser.Options{SourceName: "example.uxl"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("canvas:", doc.Canvas)
	for _, p := range doc.Pages {
		fmt.Println("page:", p.Key(), p.Caption)
	}
	for _, e := range doc.Edges {
		fmt.Printf("edge: %s -> %s\n", e.From, e.To)
	}
	// Output:
	// canvas: 300x200
	// page: home Home
	// page: next Next
	// edge: home -> next
}

func ExampleParse_error() {
	_, err := parser.Parse("P\\home\\Home\n  B\\ICON:search:99", parser.Options{SourceName: "app.uxl"})
	if pe, ok := errors.AsParseError(err); ok {
		fmt.Println(pe.Position())
		fmt.Println(pe.Snippet())
	}
	// Output:
	// app.uxl:2:5
	//   B\ICON:search:99
	//     ^
}
