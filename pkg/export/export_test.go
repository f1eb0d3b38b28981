package export

import (
	"errors"
	"strings"
	"testing"
)

func sampleContent() Content {
	return Content{
		Name:      "Grace Hopper",
		Title:     "Rear Admiral",
		Bio:       "Compiler pioneer",
		Skills:    "COBOL, FLOW-MATIC\nDebugging,",
		Projects:  "A-0 System\n\nUNIVAC I",
		Languages: "English, ",
	}
}

func TestRenderSections(t *testing.T) {
	html, err := Render(sampleContent(), Options{Template: "Modern", Theme: "teal"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"<title>Grace Hopper - Portfolio</title>",
		`<h2 class="title">Rear Admiral</h2>`,
		`<span class="tag">COBOL</span>`,
		`<span class="tag">FLOW-MATIC</span>`,
		`<span class="tag">Debugging</span>`,
		`<div class="item">A-0 System</div>`,
		`<div class="item">UNIVAC I</div>`,
		`<span class="tag">English</span>`,
		"--color-primary: #0d9488;",
		"--color-secondary: #5eead4;",
		`class="portfolio modern-template"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}

	for _, absent := range []string{`class="education"`, `class="experience"`, `class="certifications"`, `class="profile-image"`, `class="share"`} {
		if strings.Contains(html, absent) {
			t.Errorf("empty section rendered: %s", absent)
		}
	}
	if strings.Count(html, `<span class="tag">`) != 4 {
		t.Errorf("expected 4 tags, got %d", strings.Count(html, `<span class="tag">`))
	}
}

func TestRenderEscapes(t *testing.T) {
	c := Content{Name: `<script>alert(1)</script>`, Bio: `"quoted" & more`}
	html, err := Render(c, Options{
		SocialLinks: []SocialLink{{Platform: "Evil", URL: "javascript:alert(1)"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("name not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped name missing")
	}
	if strings.Contains(html, `href="javascript:`) || strings.Contains(html, "ZgotmplZ") || strings.Contains(html, ">Evil</a>") {
		t.Error("unsafe link not dropped")
	}
}

func TestRenderSocialLinks(t *testing.T) {
	html, err := Render(sampleContent(), Options{SocialLinks: []SocialLink{
		{Platform: "GitHub", URL: " https://github.com/grace "},
		{Platform: "Mail", URL: "mailto:grace@example.com"},
		{Platform: "Script", URL: "JavaScript:alert(1)"},
		{Platform: "Blog", URL: "HTTP://grace.example.com"},
	}})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(html, `<a href="https://github.com/grace" target="_blank" rel="noopener">GitHub</a>`) {
		t.Error("https link missing or untrimmed")
	}
	if !strings.Contains(html, ">Blog</a>") {
		t.Error("upper-case http scheme dropped")
	}
	for _, dropped := range []string{">Mail</a>", ">Script</a>", "ZgotmplZ"} {
		if strings.Contains(html, dropped) {
			t.Errorf("unexpected %q in output", dropped)
		}
	}

	html, _ = Render(sampleContent(), Options{SocialLinks: []SocialLink{{Platform: "Bad", URL: "ftp://x"}}})
	if strings.Contains(html, `class="social-links"`) {
		t.Error("empty social links block rendered")
	}
}

func TestRenderProfileImageAndShare(t *testing.T) {
	opts := Options{
		ProfileImage: "data:image/png;base64,iVBORw0KGgo=",
		ShareURL:     "https://example.com/grace",
	}
	html, err := Render(sampleContent(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, `<img src="data:image/png;base64,iVBORw0KGgo="`) {
		t.Error("profile image missing")
	}
	if !strings.Contains(html, `class="share"><img src="data:image/png;base64,`) {
		t.Error("share QR code missing")
	}

	opts.ProfileImage = "file:///etc/passwd"
	html, _ = Render(sampleContent(), opts)
	if strings.Contains(html, "profile-image\"><img") {
		t.Error("non-image profile URL rendered")
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(Content{Education: "only this"}, Options{}); !errors.Is(err, ErrNoContent) {
		t.Errorf("err = %v, want ErrNoContent", err)
	}
	if _, err := Render(sampleContent(), Options{Theme: "orange"}); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
}

func TestRenderDefaults(t *testing.T) {
	html, err := Render(Content{Name: "  ", Bio: "b"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<title>My Portfolio - Portfolio</title>") {
		t.Error("blank name did not fall back to My Portfolio")
	}
	if !strings.Contains(html, "--color-primary: #9333ea;") {
		t.Error("default theme is not purple")
	}
	if !strings.Contains(html, "default-template") {
		t.Error("missing default template class")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Grace Hopper", "Grace Hopper.html"},
		{"  Ada  ", "Ada.html"},
		{"", "portfolio.html"},
		{"   ", "portfolio.html"},
	}
	for _, tt := range tests {
		if got := FileName(Content{Name: tt.name}); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTemplateClass(t *testing.T) {
	tests := map[string]string{
		"Modern":       "modern",
		"my template!": "my-template",
		`"><script>`:   "script",
		"":             "default",
	}
	for in, want := range tests {
		if got := templateClass(in); got != want {
			t.Errorf("templateClass(%q) = %q, want %q", in, got, want)
		}
	}
}
