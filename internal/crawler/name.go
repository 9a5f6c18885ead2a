package crawler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// repoNameSelector matches the heading carrying the repository display
// name on the fetched README document.
const repoNameSelector = `h1.public`

// ErrNameNotFound is returned when the README document carries no
// repository name heading. Unlike a missing README this is unexpected
// markup, so the error aborts processing of that one repository.
var ErrNameNotFound = errors.New("repository name heading not found")

// ExtractRepositoryName parses the repository display name out of the
// fetched README document markup.
func ExtractRepositoryName(document string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("failed to parse README document: %w", err)
	}

	sel := doc.Find(repoNameSelector).First()
	if sel.Length() == 0 {
		return "", ErrNameNotFound
	}

	name := strings.TrimSpace(sel.Text())
	if name == "" {
		return "", ErrNameNotFound
	}

	return name, nil
}
