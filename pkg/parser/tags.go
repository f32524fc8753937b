package parser

import (
	"strings"

	"github.com/matzehuels/uxl/pkg/document"
)

// tagSpec describes the fields a tag accepts.
type tagSpec struct {
	tag     string
	kind    document.Kind
	allow   kindSet
	texts   int // Maximum number of free-text fields
	format  string
	example string
}

var tagSpecs = map[string]*tagSpec{
	"P": {
		tag:     "P",
		kind:    document.KindPage,
		allow:   setOf(fieldPadding),
		texts:   3,
		format:  `P\[ID]\CAPTION[\HINT][\P<n>]`,
		example: `P\home\"Home page"\P8`,
	},
	"F": {
		tag:     "F",
		kind:    document.KindFrame,
		allow:   setOf(fieldSize, fieldAlign, fieldMargin, fieldPadding, fieldBackground),
		texts:   1,
		format:  `F[\SIZE][\ALIGN][\M<n>][\P<n>][\BG:<url>][\HINT]`,
		example: `F\100%x50\T\P4`,
	},
	"B": {
		tag:     "B",
		kind:    document.KindButton,
		allow:   setOf(fieldIcon, fieldSize, fieldAlign, fieldAction, fieldMargin, fieldPadding, fieldRadius),
		texts:   2,
		format:  `B\CAPTION|ICON:<name>[:<size>][\SIZE][\ALIGN][\GOTO:<id>][\M<n>][\P<n>][\R<n>][\HINT]`,
		example: `B\Continue\GOTO:next\B\M4`,
	},
	"C": {
		tag:     "C",
		kind:    document.KindCaption,
		allow:   setOf(fieldSize, fieldAlign, fieldMargin, fieldPadding),
		texts:   2,
		format:  `C\CAPTION[\SIZE][\ALIGN][\M<n>][\P<n>][\HINT]`,
		example: `C\"Welcome back"\L\M4`,
	},
	"I": {
		tag:     "I",
		kind:    document.KindImage,
		allow:   setOf(fieldSource, fieldSize, fieldAlign, fieldFit, fieldMargin, fieldRadius),
		texts:   1,
		format:  `I\SRC:<url>[\SIZE][\ALIGN][\FIT|CROP][\M<n>][\R<n>][\HINT]`,
		example: `I\SRC:logo.png\64x\FIT`,
	},
	"T": {
		tag:     "T",
		kind:    document.KindTable,
		allow:   setOf(fieldColumns, fieldSize, fieldAlign, fieldAction, fieldMargin, fieldPadding),
		texts:   1,
		format:  `T\COLS:<w>[L|R|C],...[\SIZE][\ALIGN][\M<n>][\P<n>][\HINT]`,
		example: `T\COLS:2L,1R\100%x\P4`,
	},
	"TH": {
		tag:     "TH",
		kind:    document.KindTableHeader,
		format:  `TH\<cell>\<cell>...`,
		example: `TH\Name\Age`,
	},
	"TD": {
		tag:     "TD",
		kind:    document.KindTableRow,
		format:  `TD\<cell>\<cell>...`,
		example: `TD\Alice\42`,
	},
}

// record is one parsed tag line before tree building.
type record struct {
	indent int
	line   int
	tag    string
	node   document.Node

	idCol      int    // Column of a page id
	columns    string // Table column specification, validated by the tree builder
	columnsCol int
}

// parseTagLine classifies the fields of one tag line and builds its node.
func (p *parser) parseTagLine(num, indent int, fields []field) (*record, error) {
	tagField := fields[0]
	if tagField.quoted {
		return nil, p.errorf(num, tagField.col, "tag name cannot be quoted")
	}
	name := strings.ToUpper(tagField.value)
	spec, ok := tagSpecs[name]
	if !ok {
		return nil, p.errorf(num, tagField.col, "unknown tag %q%s", tagField.value, tagHint(name))
	}

	rec := &record{indent: indent, line: num, tag: name}
	rest := fields[1:]

	switch spec.kind {
	case document.KindTableHeader:
		rec.node = &document.TableHeader{NodeInfo: document.NodeInfo{Line: num}, Cells: cellValues(rest)}
		return rec, nil
	case document.KindTableRow:
		rec.node = &document.TableRow{NodeInfo: document.NodeInfo{Line: num}, Cells: cellValues(rest)}
		return rec, nil
	}

	v, err := p.classifyFields(num, spec, rest)
	if err != nil {
		return nil, err
	}
	if len(v.texts) > spec.texts {
		extra := v.texts[spec.texts]
		return nil, p.errorf(num, extra.col, "too many text fields on tag %s: %q is not a recognized field; expected format: %s (example: %s)",
			spec.tag, extra.src, spec.format, spec.example)
	}
	info := document.NodeInfo{Line: num}

	switch spec.kind {
	case document.KindPage:
		pg := &document.Page{NodeInfo: info, Padding: v.padding}
		switch len(v.texts) {
		case 0:
			return nil, p.errorf(num, tagField.col, "page caption is required; expected format: %s (example: %s)", spec.format, spec.example)
		case 1:
			pg.Caption = v.texts[0].value
		case 2:
			pg.PageID, pg.Caption = v.texts[0].value, v.texts[1].value
		case 3:
			pg.PageID, pg.Caption, pg.Hint = v.texts[0].value, v.texts[1].value, v.texts[2].value
		}
		if len(v.texts) > 1 {
			rec.idCol = v.texts[0].col
		}
		rec.node = pg

	case document.KindFrame:
		fr := &document.Frame{
			NodeInfo:   info,
			Margin:     v.margin,
			Padding:    v.padding,
			Background: v.background,
			Size:       v.size,
			Align:      v.align,
		}
		fr.Hint = textAt(v.texts, 0)
		rec.node = fr

	case document.KindButton:
		btn := &document.Button{
			NodeInfo: info,
			Caption:  textAt(v.texts, 0),
			Icon:     v.icon,
			IconSize: v.iconSize,
			Size:     v.size,
			Align:    v.align,
			Action:   v.action,
			Margin:   v.margin,
			Padding:  v.padding,
			Radius:   v.radius,
		}
		btn.Hint = textAt(v.texts, 1)
		if btn.Caption == "" && btn.Icon == "" {
			return nil, p.errorf(num, tagField.col, "button needs a caption or an icon; expected format: %s (example: %s)", spec.format, spec.example)
		}
		rec.node = btn

	case document.KindCaption:
		if len(v.texts) == 0 {
			return nil, p.errorf(num, tagField.col, "caption text is required; expected format: %s (example: %s)", spec.format, spec.example)
		}
		c := &document.Caption{
			NodeInfo: info,
			Text:     v.texts[0].value,
			Size:     v.size,
			Align:    v.align,
			Margin:   v.margin,
			Padding:  v.padding,
		}
		c.Hint = textAt(v.texts, 1)
		rec.node = c

	case document.KindImage:
		if !v.seen.has(fieldSource) {
			return nil, p.errorf(num, tagField.col, "image source is required; expected format: %s (example: %s)", spec.format, spec.example)
		}
		img := &document.Image{
			NodeInfo: info,
			Src:      v.source,
			Fit:      v.fit,
			Size:     v.size,
			Align:    v.align,
			Margin:   v.margin,
			Radius:   v.radius,
		}
		img.Hint = textAt(v.texts, 0)
		rec.node = img

	case document.KindTable:
		if !v.seen.has(fieldColumns) {
			return nil, p.errorf(num, tagField.col, "table column specification is required; expected format: %s (example: %s)", spec.format, spec.example)
		}
		if v.action != nil && p.opts.Mode == Strict {
			return nil, p.errorf(num, v.actionField.col, "action field %q is not allowed on tag T in strict mode (tables cannot navigate); expected format: %s (example: %s)",
				v.actionField.src, spec.format, spec.example)
		}
		tbl := &document.Table{
			NodeInfo:    info,
			Size:        v.size,
			Align:       v.align,
			Margin:      v.margin,
			CellPadding: v.padding,
		}
		tbl.Hint = textAt(v.texts, 0)
		rec.node = tbl
		rec.columns, rec.columnsCol = v.columns, v.columnsCol
	}
	return rec, nil
}

// classifyFields runs every field through the recognizers and the tag's
// allow-flags.
func (p *parser) classifyFields(num int, spec *tagSpec, fields []field) (*values, error) {
	v := &values{}
	for _, f := range fields {
		kind := classify(f)
		if kind == fieldText {
			v.texts = append(v.texts, f)
			continue
		}
		if kind == fieldAction && !isGoto(f.value) {
			if p.opts.Mode == Permissive {
				continue
			}
			return nil, p.errorf(num, f.col, "unknown action %q on tag %s (only GOTO:<id> is supported)", f.src, spec.tag)
		}
		if !spec.allow.has(kind) {
			return nil, p.errorf(num, f.col, "%s field %q is not allowed on tag %s; expected format: %s (example: %s)",
				kind, f.src, spec.tag, spec.format, spec.example)
		}
		if v.seen.has(kind) {
			return nil, p.errorf(num, f.col, "duplicate %s field %q on tag %s; expected format: %s (example: %s)",
				kind, f.src, spec.tag, spec.format, spec.example)
		}
		v.seen |= setOf(kind)
		if err := v.set(kind, f, p.opts.Icons); err != nil {
			return nil, p.errorf(num, f.col, "invalid %s field %q on tag %s: %v; expected format: %s (example: %s)",
				kind, f.src, spec.tag, err, spec.format, spec.example)
		}
	}
	return v, nil
}

func textAt(texts []field, i int) string {
	if i < len(texts) {
		return texts[i].value
	}
	return ""
}

func cellValues(fields []field) []string {
	cells := make([]string, len(fields))
	for i, f := range fields {
		cells[i] = f.value
	}
	return cells
}
