package generate

import (
	"fmt"
	"strings"
)

// Template styles understood by BuildPrompt. Anything else gets the
// professional guide.
const (
	StyleModern  = "modern"
	StyleMinimal = "minimal"
	StyleElegant = "elegant"
)

var styleGuides = map[string]string{
	StyleModern: `Style Guide: Modern
- Use a contemporary, tech-forward writing style
- Emphasize innovation and cutting-edge approaches
- Use clean, concise language with technical focus
- Highlight relevance to current industry trends
- Present skills in a forward-thinking manner
- Describe projects with focus on modern technologies and innovative solutions
- Overall tone should be professional, confident and forward-looking`,
	StyleMinimal: `Style Guide: Minimal
- Use simple, streamlined writing with short sentences
- Focus on essential information only, avoid fluff or excessive detail
- Employ minimalist phrasing that highlights core value
- Use straightforward, unpretentious language
- Organize content in a clean, uncluttered way
- List skills concisely with focus on expertise level
- Describe projects in brief, impactful statements
- Overall tone should be clean, calm, and efficient`,
	StyleElegant: `Style Guide: Elegant
- Use sophisticated, refined language with a touch of formality
- Employ graceful phrasing and well-structured sentences
- Focus on quality and craftsmanship in work descriptions
- Highlight attention to detail and refined approach
- Present skills with emphasis on mastery and excellence
- Describe projects with focus on their sophistication and polished nature
- Overall tone should be cultivated, articulate and distinguished`,
}

const professionalGuide = `Style Guide: Professional
- Use clear, professional language
- Balance between detailed and concise information
- Present skills and experience in a straightforward manner
- Describe projects with focus on outcomes and value
- Overall tone should be professional and approachable`

// StyleGuide returns the writing guide for a template style.
func StyleGuide(templateStyle string) string {
	if g, ok := styleGuides[strings.ToLower(strings.TrimSpace(templateStyle))]; ok {
		return g
	}
	return professionalGuide
}

// BuildPrompt renders the single user message sent to the model.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("Generate a professional HTML portfolio section for the following user, following the specific style guide below.\n")
	fmt.Fprintf(&b, "Name: %s\nBio: %s\nSkills: %s\nProjects: %s", req.Name, req.Bio, req.Skills, req.Projects)

	if len(req.SocialLinks) > 0 {
		links := make([]string, 0, len(req.SocialLinks))
		for _, l := range req.SocialLinks {
			links = append(links, fmt.Sprintf("%s (%s)", l.Platform, l.URL))
		}
		fmt.Fprintf(&b, "\nSocial Links: %s", strings.Join(links, ", "))
	}
	if req.ProfileImage != "" {
		b.WriteString("\nUser has uploaded a profile picture to use in the portfolio.")
	}

	b.WriteString("\n\n")
	b.WriteString(StyleGuide(req.TemplateStyle))
	b.WriteString(`

Please format the portfolio as valid HTML that is clean and beautifully designed.
Include appropriate styling and utilize the provided information effectively.
If social links are provided, please include them with appropriate icons.
If a profile image is mentioned, please reference it in the design (assume the image exists).
Make sure the HTML is semantically correct and uses appropriate heading levels.`)

	return b.String()
}
