package projector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// layoutC is the single-column chronological variant. It has no image slot
// and deliberately omits the social-profiles section; skills render as one
// comma-joined line rather than individual entries.
type layoutC struct{}

func (l *layoutC) ID() string   { return LayoutC }
func (l *layoutC) Name() string { return "Chronological" }
func (l *layoutC) Description() string {
	return "Single-column chronological layout in a plain ATS-friendly style."
}

func (l *layoutC) Render(data *types.CVData) string {
	var b strings.Builder

	b.WriteString(`<div class="cv-wrapper layout-c"><div class="cv-container">`)
	l.writeHeader(&b, data.BasicDetails)
	l.writeSummary(&b, data.BasicDetails.Summary)
	l.writeExperience(&b, data.Experience)
	l.writeProjects(&b, data.Projects)
	l.writeEducation(&b, data.Education)
	l.writeSkills(&b, data.Skills)
	b.WriteString(`</div></div>`)
	return b.String()
}

func (l *layoutC) writeHeader(b *strings.Builder, d types.BasicDetails) {
	b.WriteString(`<div class="header">`)
	fmt.Fprintf(b, `<h1 class="name">%s</h1>`, EscapeHTML(fullName(d)))
	b.WriteString(`<div class="contact-info">`)
	if d.Email != "" {
		fmt.Fprintf(b, `<span class="contact-item"><strong>Email:</strong> %s</span>`, EscapeHTML(d.Email))
	}
	if d.Phone != "" {
		fmt.Fprintf(b, `<span class="contact-item"><strong>Mobile:</strong> %s</span>`, EscapeHTML(d.Phone))
	}
	if location := joinPresent(", ", d.City, d.State); location != "" {
		fmt.Fprintf(b, `<span class="contact-item"><strong>Location:</strong> %s</span>`, EscapeHTML(location))
	}
	b.WriteString(`</div></div>`)
}

func (l *layoutC) writeSectionTitle(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, title)
}

func (l *layoutC) writeSummary(b *strings.Builder, summary string) {
	b.WriteString(`<div class="section summary">`)
	l.writeSectionTitle(b, "Professional Summary")
	if summary != "" {
		fmt.Fprintf(b, `<p class="summary-content">%s</p>`, EscapeHTML(summary))
	} else {
		b.WriteString(`<div class="empty-state">No professional summary</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutC) writeExperience(b *strings.Builder, experience []types.Experience) {
	b.WriteString(`<div class="section experience">`)
	l.writeSectionTitle(b, "Experience")
	if len(experience) > 0 {
		for _, exp := range experience {
			b.WriteString(`<div class="experience-item"><div class="experience-header">`)
			b.WriteString(`<div class="company-info">`)
			fmt.Fprintf(b, `<div class="company-name">%s</div>`, EscapeHTML(exp.Organization))
			fmt.Fprintf(b, `<div class="job-title">%s</div>`, EscapeHTML(exp.Position))
			b.WriteString(`</div><div class="location-date">`)
			if exp.Location != "" {
				fmt.Fprintf(b, `<div class="location">%s</div>`, EscapeHTML(exp.Location))
			}
			if exp.StartDate != "" {
				end := ""
				if exp.EndDate != nil {
					end = *exp.EndDate
				}
				fmt.Fprintf(b, `<div class="date-range">%s</div>`, EscapeHTML(dateSpan(exp.StartDate, end)))
			}
			b.WriteString(`</div></div>`)
			writeTagChips(b, exp.Technologies)
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No work experience</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutC) writeProjects(b *strings.Builder, projects []types.Project) {
	b.WriteString(`<div class="section projects">`)
	l.writeSectionTitle(b, "Projects")
	if len(projects) > 0 {
		for _, p := range projects {
			b.WriteString(`<div class="project-item">`)
			fmt.Fprintf(b, `<div class="project-header">%s</div>`, EscapeHTML(p.Title))
			if p.Duration != "" {
				fmt.Fprintf(b, `<div class="project-meta">%s</div>`, EscapeHTML(p.Duration))
			}
			writeTagChips(b, p.Technologies)
			if p.Description != "" {
				fmt.Fprintf(b, `<p class="project-desc">%s</p>`, EscapeHTML(p.Description))
			}
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No projects</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutC) writeEducation(b *strings.Builder, education []types.Education) {
	b.WriteString(`<div class="section education">`)
	l.writeSectionTitle(b, "Education")
	if hasEducationContent(education) {
		for _, edu := range education {
			b.WriteString(`<div class="education-item"><div class="education-header"><div>`)
			fmt.Fprintf(b, `<div class="university-name">%s</div>`, EscapeHTML(edu.Institution))
			fmt.Fprintf(b, `<div class="degree">%s</div>`, EscapeHTML(edu.Degree))
			b.WriteString(`</div><div class="edu-info">`)
			if edu.StartDate != "" {
				fmt.Fprintf(b, `<div class="date-range">%s</div>`, EscapeHTML(dateSpan(edu.StartDate, edu.EndDate)))
			}
			if edu.Percentage > 0 {
				fmt.Fprintf(b, `<div class="cgpa">%s</div>`, strconv.FormatFloat(edu.Percentage, 'f', -1, 64))
			}
			b.WriteString(`</div></div></div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No education history</div>`)
	}
	b.WriteString(`</div>`)
}

// writeSkills joins skill names into one comma-separated line; duplicates
// and order are preserved.
func (l *layoutC) writeSkills(b *strings.Builder, skills []types.Skill) {
	b.WriteString(`<div class="section skills">`)
	l.writeSectionTitle(b, "Skills")
	if len(skills) > 0 {
		names := make([]string, len(skills))
		for i, s := range skills {
			names[i] = s.Name
		}
		b.WriteString(`<div class="skill-category">`)
		b.WriteString(`<span class="skill-label">Technical Skills: </span>`)
		fmt.Fprintf(b, `<span class="skill-list">%s</span>`, EscapeHTML(strings.Join(names, ", ")))
		b.WriteString(`</div>`)
	} else {
		b.WriteString(`<div class="empty-state">No skills added</div>`)
	}
	b.WriteString(`</div>`)
}
