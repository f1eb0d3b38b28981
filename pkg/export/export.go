// Package export renders portfolio content as a standalone HTML document.
package export

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"log"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/skip2/go-qrcode"

	"github.com/gonewx/folio/pkg/config"
)

var (
	ErrNoContent    = errors.New("export: portfolio has no content")
	ErrUnknownTheme = errors.New("export: unknown theme")
)

//go:embed portfolio.html.tmpl
var portfolioTemplate string

var page = template.Must(template.New("portfolio").Parse(portfolioTemplate))

// Content is the portfolio text. Skills and Languages are comma separated
// (skills may also use newlines); other list sections use one entry per line.
type Content struct {
	Name           string `json:"name"`
	Title          string `json:"title,omitempty"`
	Bio            string `json:"bio"`
	Skills         string `json:"skills"`
	Projects       string `json:"projects"`
	Education      string `json:"education,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Achievements   string `json:"achievements,omitempty"`
	Languages      string `json:"languages,omitempty"`
	Certifications string `json:"certifications,omitempty"`
}

// HasContent reports whether any of name, bio, skills or projects is set.
func (c Content) HasContent() bool {
	return c.Name != "" || c.Bio != "" || c.Skills != "" || c.Projects != ""
}

// SocialLink is one link rendered in the header.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Options controls presentation.
type Options struct {
	Template     string       `json:"template,omitempty"`
	Theme        string       `json:"theme,omitempty"`
	ProfileImage string       `json:"profileImage,omitempty"`
	SocialLinks  []SocialLink `json:"socialLinks,omitempty"`
	// ShareURL, when set, is encoded as a QR code below the content.
	ShareURL string `json:"shareUrl,omitempty"`
}

type section struct {
	Class   string
	Heading string
	Items   []string
	Tags    bool
}

type pageData struct {
	Title         string
	Name          string
	JobTitle      string
	Bio           string
	TemplateClass string
	Primary       template.CSS
	Secondary     template.CSS
	PrimarySoft   template.CSS
	PrimaryDeep   template.CSS
	ProfileImage  template.URL
	SocialLinks   []SocialLink
	Sections      []section
	ShareURL      string
	ShareQR       template.URL
}

var (
	commaOrNewline = regexp.MustCompile(`,|\n`)
	classUnsafe    = regexp.MustCompile(`[^a-z0-9-]+`)
)

// Render builds the HTML document. All user text is escaped.
func Render(c Content, opts Options) (string, error) {
	if !c.HasContent() {
		return "", ErrNoContent
	}

	theme, ok := config.FindTheme(opts.Theme)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, opts.Theme)
	}
	palette, err := newPalette(theme)
	if err != nil {
		return "", err
	}

	data := pageData{
		Title:         strings.TrimSpace(c.Name),
		Name:          c.Name,
		JobTitle:      c.Title,
		Bio:           c.Bio,
		TemplateClass: templateClass(opts.Template),
		Primary:       palette.primary,
		Secondary:     palette.secondary,
		PrimarySoft:   palette.soft,
		PrimaryDeep:   palette.deep,
		ProfileImage:  imageURL(opts.ProfileImage),
		SocialLinks:   safeLinks(opts.SocialLinks),
		Sections:      sections(c),
		ShareURL:      opts.ShareURL,
	}
	if data.Title == "" {
		data.Title = "My Portfolio"
	}
	if opts.ShareURL != "" {
		qr, err := qrDataURL(opts.ShareURL)
		if err != nil {
			return "", err
		}
		data.ShareQR = qr
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render portfolio: %w", err)
	}
	log.Printf("[Exporter] Rendered %q with theme %s (%d bytes)", data.Title, theme.Name, buf.Len())
	return buf.String(), nil
}

// FileName returns the download name for c.
func FileName(c Content) string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "portfolio"
	}
	return name + ".html"
}

func sections(c Content) []section {
	out := make([]section, 0, 7)
	add := func(class, heading, text string, split func(string) []string, tags bool) {
		if text == "" {
			return
		}
		items := split(text)
		if len(items) == 0 {
			return
		}
		out = append(out, section{Class: class, Heading: heading, Items: items, Tags: tags})
	}

	add("skills", "Skills", c.Skills, splitCommaOrNewline, true)
	add("education", "Education", c.Education, splitLines, false)
	add("experience", "Experience", c.Experience, splitLines, false)
	add("projects", "Projects", c.Projects, splitLines, false)
	add("achievements", "Achievements", c.Achievements, splitLines, false)
	add("languages", "Languages", c.Languages, splitComma, true)
	add("certifications", "Certifications", c.Certifications, splitLines, false)
	return out
}

func splitCommaOrNewline(s string) []string {
	return trimAll(commaOrNewline.Split(s, -1))
}

func splitComma(s string) []string {
	return trimAll(strings.Split(s, ","))
}

func splitLines(s string) []string {
	return trimAll(strings.Split(s, "\n"))
}

// trimAll 去除空白并丢弃空项
func trimAll(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func templateClass(name string) string {
	class := strings.Trim(classUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if class == "" {
		return "default"
	}
	return class
}

// imageURL 只接受 data:image/ 与 http(s) 地址
func imageURL(src string) template.URL {
	src = strings.TrimSpace(src)
	switch {
	case strings.HasPrefix(src, "data:image/"),
		strings.HasPrefix(src, "https://"),
		strings.HasPrefix(src, "http://"):
		return template.URL(src)
	}
	return ""
}

// safeLinks 丢弃非 http(s) 的社交链接
func safeLinks(links []SocialLink) []SocialLink {
	var out []SocialLink
	for _, l := range links {
		u := strings.TrimSpace(l.URL)
		lower := strings.ToLower(u)
		if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
			out = append(out, SocialLink{Platform: l.Platform, URL: u})
		}
	}
	return out
}

func qrDataURL(content string) (template.URL, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("encode share QR code: %w", err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}

type palette struct {
	primary, secondary, soft, deep template.CSS
}

// newPalette 由主题色派生浅色/深色背景的卡片底色
func newPalette(th config.Theme) (palette, error) {
	primary, err := colorful.Hex(th.Primary)
	if err != nil {
		return palette{}, fmt.Errorf("theme %s primary: %w", th.Name, err)
	}
	secondary, err := colorful.Hex(th.Secondary)
	if err != nil {
		return palette{}, fmt.Errorf("theme %s secondary: %w", th.Name, err)
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	return palette{
		primary:   template.CSS(primary.Hex()),
		secondary: template.CSS(secondary.Hex()),
		soft:      template.CSS(primary.BlendLab(white, 0.9).Clamped().Hex()),
		deep:      template.CSS(primary.BlendLab(black, 0.7).Clamped().Hex()),
	}, nil
}
