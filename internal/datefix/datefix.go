// Package datefix rewrites date literals embedded in SQL text.
package datefix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// datePattern matches literals like `date '2021-6-15'`. Month and day may be
// 1-3 digits and are deliberately not validated as calendar values, so a
// literal like date '2021-13-40' is matched and shifted too.
var datePattern = regexp.MustCompile(`date '(\d{4})-(\d{1,3})-(\d{1,3})'`)

// ShiftYears rewrites every date literal in text with its year component
// shifted by delta, leaving month, day, and all non-matching content
// untouched.
func ShiftYears(text string, delta int) string {
	return datePattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := datePattern.FindStringSubmatch(match)
		year, err := strconv.Atoi(groups[1])
		if err != nil {
			return match
		}
		return fmt.Sprintf("date '%d-%s-%s'", year+delta, groups[2], groups[3])
	})
}

// ShiftFile copies in to out line by line, shifting the year of every date
// literal by delta. Line endings and non-matching content pass through
// verbatim.
func ShiftFile(in io.Reader, out io.Writer, delta int) error {
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if _, werr := writer.WriteString(ShiftYears(line, delta)); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	return writer.Flush()
}
