package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Summary as Markdown tables.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function applied to every label.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		if fn != nil {
			f.translate = fn
		}
	}
}

// WithVersion sets the version shown in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.translate

	fmt.Fprintf(&b, "# %s\n\n", t("Encoding Summary"))

	f.table(&b, [][2]string{
		{t("Output"), orDash(s.Run.OutputPath)},
		{t("Input"), orDash(s.Run.Input)},
		{t("Backend"), orDash(s.Run.Backend)},
		{t("Run ID"), orDash(s.Run.ID)},
	})

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	rows := [][2]string{
		{t("Frame Rate"), fmt.Sprintf("%g fps", s.Settings.Framerate)},
		{t("Size"), fmt.Sprintf("%dx%d", s.Settings.Width, s.Settings.Height)},
		{t("Encoder"), orDash(s.Settings.Encoder)},
		{t("Muxer"), orDash(s.Settings.Muxer)},
		{t("Pixel Format"), orDash(s.Settings.Format)},
		{t("Caps"), orDash(s.Settings.Caps)},
	}
	if s.Settings.Quality > 0 {
		rows = append(rows, [2]string{t("Quality"), fmt.Sprintf("CRF %d", s.Settings.Quality)})
	}
	if s.Settings.Bitrate > 0 {
		rows = append(rows, [2]string{t("Bitrate"), fmt.Sprintf("%d kbps", s.Settings.Bitrate)})
	}
	f.table(&b, rows)

	fmt.Fprintf(&b, "## %s\n\n", t("Video"))
	f.table(&b, [][2]string{
		{t("Source Frames"), fmt.Sprintf("%d", s.Video.SourceFrames)},
		{t("Encoded Frames"), fmt.Sprintf("%d", s.Video.Frames)},
		{t("Duration"), fmt.Sprintf("%d ms", s.Video.DurationMs)},
		{t("Encoding Time"), fmt.Sprintf("%d ms", s.Video.ElapsedMs)},
		{t("File Size"), formatBytes(s.Video.FileSize)},
	})

	if p := s.Probe; p != nil {
		fragmented := t("No")
		if p.Fragmented {
			fragmented = t("Yes")
		}
		fmt.Fprintf(&b, "## %s\n\n", t("Container"))
		f.table(&b, [][2]string{
			{t("Codec"), p.Codec},
			{t("Size"), fmt.Sprintf("%dx%d", p.Width, p.Height)},
			{t("Samples"), fmt.Sprintf("%d", p.Samples)},
			{t("Duration"), fmt.Sprintf("%d ms", p.DurationMs)},
			{t("Frame Rate"), fmt.Sprintf("%.2f fps", p.FrameRate)},
			{t("Fragmented"), fragmented},
		})
	}

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if f.version != "" {
		footer += fmt.Sprintf(" (streamenc %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) table(b *strings.Builder, rows [][2]string) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|------|-------|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", r[0], escapeCell(r[1]))
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
