package mailparse

import (
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
)

// ExtractContent flattens an entity tree into the text the classifier and
// link extractor run on. Multipart entities contribute their children joined
// with newlines in document order; leaf entities contribute their decoded
// payload, except attachments, which contribute nothing. A part that cannot
// be decoded contributes an empty string and its error is collected; a bad
// part never aborts its siblings.
func ExtractContent(entity *message.Entity) (string, []error) {
	if mr := entity.MultipartReader(); mr != nil {
		var contributions []string
		var partErrs []error
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if message.IsUnknownCharset(err) || message.IsUnknownEncoding(err) {
				partErrs = append(partErrs, fmt.Errorf("undecodable part: %w", err))
				contributions = append(contributions, "")
				continue
			}
			if err != nil {
				// The part stream itself is broken; nothing further can be
				// pulled out of this container.
				partErrs = append(partErrs, fmt.Errorf("read part: %w", err))
				break
			}
			text, errs := ExtractContent(part)
			contributions = append(contributions, text)
			partErrs = append(partErrs, errs...)
		}
		return strings.Join(contributions, "\n"), partErrs
	}

	if disposition, _, _ := entity.Header.ContentDisposition(); disposition == "attachment" {
		return "", nil
	}

	payload, err := io.ReadAll(entity.Body)
	if err != nil {
		return "", []error{fmt.Errorf("decode part body: %w", err)}
	}
	return string(payload), nil
}
