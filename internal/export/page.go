package export

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/projector"
)

// baseCSS carries the structural styles the layout variants rely on. Kept
// deliberately small; print styling beyond structure is out of scope.
const baseCSS = `
body { font-family: Helvetica, Arial, sans-serif; margin: 0; color: #1a1a2e; }
.layout-a .content { display: flex; }
.layout-a .left-column { width: 34%; background: #2c3e50; color: #ecf0f1; padding: 24px; }
.layout-a .right-column { flex: 1; padding: 24px; }
.layout-b .content { display: flex; }
.layout-b .left-column { width: 36%; background: #f4f6f8; padding: 24px; }
.layout-b .right-column { flex: 1; padding: 24px; }
.layout-c .cv-container { max-width: 720px; margin: 0 auto; padding: 32px; }
.section-title { border-bottom: 1px solid #ccc; padding-bottom: 4px; }
.progress-bar { background: #d0d7de; height: 6px; border-radius: 3px; }
.progress-fill { background: #3498db; height: 6px; border-radius: 3px; }
.chip { display: inline-block; background: #e8edf2; border-radius: 10px; padding: 2px 10px; margin: 2px; font-size: 12px; }
.avatar-placeholder { display: flex; align-items: center; justify-content: center; width: 96px; height: 96px; border-radius: 50%; background: #7f8c8d; color: #fff; font-size: 32px; }
.profile-img { width: 96px; height: 96px; border-radius: 50%; object-fit: cover; }
.template-missing { padding: 48px; text-align: center; color: #888; }
`

// Standalone wraps a projected fragment in a complete HTML document so the
// browser can render it without external assets.
func Standalone(title, fragment string) string {
	var sb strings.Builder
	sb.Grow(len(fragment) + len(baseCSS) + 256)
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", projector.EscapeHTML(title))
	sb.WriteString("<style>")
	sb.WriteString(baseCSS)
	sb.WriteString("</style>\n</head>\n<body>\n")
	sb.WriteString(fragment)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}
