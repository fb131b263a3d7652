/*
 * WasmTypes - WebAssembly type section resolution and validation
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pretty

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/rivo/uniseg"

	"github.com/onflow/wasmtypes/ast"
	"github.com/onflow/wasmtypes/common"
	"github.com/onflow/wasmtypes/errors"
)

const errorPrefix = "error"
const excerptArrow = "--> "

func colorizeError(message string) string {
	return aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeNote(message string) string {
	return aurora.Colorize(message, aurora.CyanFg|aurora.BoldFm).String()
}

func colorizeMessage(message string) string {
	return aurora.Bold(message).String()
}

func colorizeMeta(meta string) string {
	return aurora.Blue(meta).String()
}

// FormatErrorMessage returns an error message line, e.g. `error: invalid subtype`,
// optionally colorized for terminal output
func FormatErrorMessage(prefix string, message string, useColor bool) string {
	var builder strings.Builder
	if useColor {
		builder.WriteString(colorizeError(prefix))
		builder.WriteString(colorizeMessage(": "))
		builder.WriteString(colorizeMessage(message))
	} else {
		builder.WriteString(prefix)
		builder.WriteString(": ")
		builder.WriteString(message)
	}
	builder.WriteRune('\n')
	return builder.String()
}

type excerpt struct {
	startPos *ast.Position
	endPos   *ast.Position
	message  string
	isError  bool
}

func newExcerpt(obj any, message string, isError bool) *excerpt {
	result := &excerpt{
		message: message,
		isError: isError,
	}
	if hasPosition, ok := obj.(ast.HasPosition); ok {
		startPos := hasPosition.StartPosition()
		result.startPos = &startPos

		endPos := hasPosition.EndPosition(nil)
		result.endPos = &endPos
	}
	return result
}

type sortableExcerpts []*excerpt

var _ sort.Interface = sortableExcerpts(nil)

func (excerpts sortableExcerpts) Len() int {
	return len(excerpts)
}

func (excerpts sortableExcerpts) Less(i, j int) bool {
	first := excerpts[i].startPos
	second := excerpts[j].startPos
	switch {
	case first == nil:
		return second != nil
	case second == nil:
		return false
	case first.Line != second.Line:
		return first.Line < second.Line
	default:
		return first.Column < second.Column
	}
}

func (excerpts sortableExcerpts) Swap(i, j int) {
	excerpts[i], excerpts[j] = excerpts[j], excerpts[i]
}

// ErrorPrettyPrinter prints errors with their source code excerpts,
// in the style of a compiler diagnostic:
//
//	error: cannot find type in this scope: `$pair`
//	 --> module:3:18
//	  |
//	3 |   (type $t (sub $pair (struct)))
//	  |                 ^^^^^ not found in this scope
type ErrorPrettyPrinter struct {
	writer   io.Writer
	useColor bool
}

func NewErrorPrettyPrinter(writer io.Writer, useColor bool) ErrorPrettyPrinter {
	return ErrorPrettyPrinter{
		writer:   writer,
		useColor: useColor,
	}
}

func (p ErrorPrettyPrinter) writeString(str string) error {
	_, err := p.writer.Write([]byte(str))
	return err
}

// PrettyPrintError writes the given error to the printer's writer.
// If the error is a parent error, i.e. it has child errors,
// then the child errors are printed, separated by blank lines
func (p ErrorPrettyPrinter) PrettyPrintError(
	err error,
	location common.Location,
	codes map[common.Location][]byte,
) error {
	i := 0
	var printError func(err error) error
	printError = func(err error) error {

		if parentError, ok := err.(errors.ParentError); ok {
			for _, childError := range parentError.ChildErrors() {
				printErr := printError(childError)
				if printErr != nil {
					return printErr
				}
			}
			return nil
		}

		if i > 0 {
			printErr := p.writeString("\n")
			if printErr != nil {
				return printErr
			}
		}
		i++

		return p.prettyPrintError(err, location, codes[location])
	}
	return printError(err)
}

func (p ErrorPrettyPrinter) prettyPrintError(
	err error,
	location common.Location,
	code []byte,
) error {

	printErr := p.writeString(FormatErrorMessage(errorPrefix, err.Error(), p.useColor))
	if printErr != nil {
		return printErr
	}

	message := ""
	if secondaryError, ok := err.(errors.SecondaryError); ok {
		message = secondaryError.SecondaryError()
	}

	excerpts := []*excerpt{
		newExcerpt(err, message, true),
	}

	if errorNotes, ok := err.(errors.ErrorNotes); ok {
		for _, errorNote := range errorNotes.ErrorNotes() {
			excerpts = append(
				excerpts,
				newExcerpt(errorNote, errorNote.Message(), false),
			)
		}
	}

	sort.Sort(sortableExcerpts(excerpts))

	printErr = p.writeCodeExcerpts(excerpts, location, code)
	if printErr != nil {
		return printErr
	}

	return p.writeDocumentationLink(err)
}

// writeDocumentationLink writes a final line pointing at external documentation,
// for errors that provide a link
func (p ErrorPrettyPrinter) writeDocumentationLink(err error) error {
	documentedErr, ok := err.(errors.HasDocumentationLink)
	if !ok {
		return nil
	}

	link := documentedErr.DocumentationLink()
	if link == "" {
		return nil
	}

	line := "For more information, see " + link + "\n"
	if p.useColor {
		line = colorizeMeta(line)
	}
	return p.writeString(line)
}

func (p ErrorPrettyPrinter) writeCodeExcerpts(
	excerpts []*excerpt,
	location common.Location,
	code []byte,
) error {
	if len(excerpts) == 0 || excerpts[0].startPos == nil {
		return nil
	}

	printErr := p.writeArrowLine(excerpts[0].startPos, location)
	if printErr != nil {
		return printErr
	}

	lines := strings.Split(string(code), "\n")

	maxLineNumberLength := 0
	for _, excerpt := range excerpts {
		if excerpt.startPos == nil {
			continue
		}
		lineNumberLength := len(fmt.Sprint(excerpt.startPos.Line))
		if lineNumberLength > maxLineNumberLength {
			maxLineNumberLength = lineNumberLength
		}
	}

	emptyLineNumbers := strings.Repeat(" ", maxLineNumberLength)

	wroteIntro := false
	lastLineNumber := 0

	for _, excerpt := range excerpts {
		if excerpt.startPos == nil {
			continue
		}

		lineNumber := excerpt.startPos.Line
		if lineNumber < 1 || lineNumber > len(lines) {
			continue
		}

		line := lines[lineNumber-1]

		if lineNumber != lastLineNumber {

			if !wroteIntro {
				printErr = p.writeMetaLine(emptyLineNumbers + " |\n")
				if printErr != nil {
					return printErr
				}
				wroteIntro = true
			} else if lineNumber > lastLineNumber+1 {
				printErr = p.writeMetaLine(emptyLineNumbers + " ...\n")
				if printErr != nil {
					return printErr
				}
			}

			lineNumberString := fmt.Sprintf("%*d", maxLineNumberLength, lineNumber)
			codeColumn := lineNumberString + " | "
			if p.useColor {
				codeColumn = colorizeMeta(codeColumn)
			}
			printErr = p.writeString(codeColumn + line + "\n")
			if printErr != nil {
				return printErr
			}

			lastLineNumber = lineNumber
		}

		printErr = p.writeMarkerLine(excerpt, line, emptyLineNumbers)
		if printErr != nil {
			return printErr
		}
	}

	return nil
}

func (p ErrorPrettyPrinter) writeArrowLine(
	startPos *ast.Position,
	location common.Location,
) error {
	arrow := excerptArrow
	if p.useColor {
		arrow = colorizeMeta(arrow)
	}

	locationString := ""
	if location != nil {
		locationString = location.String()
	}

	return p.writeString(fmt.Sprintf(
		" %s%s:%d:%d\n",
		arrow,
		locationString,
		startPos.Line,
		startPos.Column,
	))
}

func (p ErrorPrettyPrinter) writeMetaLine(line string) error {
	if p.useColor {
		line = colorizeMeta(line)
	}
	return p.writeString(line)
}

// writeMarkerLine writes the line which marks the excerpt's columns
// with carets, below the excerpted code line.
// The leading whitespace keeps tabs of the code line,
// so the markers stay aligned independent of the tab width
func (p ErrorPrettyPrinter) writeMarkerLine(
	excerpt *excerpt,
	line string,
	emptyLineNumbers string,
) error {
	startColumn := excerpt.startPos.Column
	endColumn := startColumn
	if excerpt.endPos != nil {
		endColumn = excerpt.endPos.Column
		if excerpt.endPos.Line > excerpt.startPos.Line {
			endColumn = math.MaxInt
		}
	}

	var leading strings.Builder
	var carets strings.Builder

	column := 0
	graphemes := uniseg.NewGraphemes(line)
	for graphemes.Next() {
		if column > endColumn {
			break
		}
		if column < startColumn {
			if graphemes.Str() == "\t" {
				leading.WriteByte('\t')
			} else {
				leading.WriteByte(' ')
			}
		} else {
			carets.WriteByte('^')
		}
		column++
	}

	markers := carets.String()
	message := excerpt.message

	if markers == "" && message == "" {
		return nil
	}

	if p.useColor {
		colorize := colorizeError
		if !excerpt.isError {
			colorize = colorizeNote
		}
		if markers != "" {
			markers = colorize(markers)
		}
		if message != "" {
			message = colorize(message)
		}
	}

	gutter := emptyLineNumbers + " | "
	if p.useColor {
		gutter = colorizeMeta(gutter)
	}

	var builder strings.Builder
	builder.WriteString(gutter)
	builder.WriteString(leading.String())
	builder.WriteString(markers)
	if message != "" {
		if markers != "" {
			builder.WriteByte(' ')
		}
		builder.WriteString(message)
	}
	builder.WriteByte('\n')

	return p.writeString(builder.String())
}
