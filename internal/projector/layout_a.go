package projector

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// layoutA is the two-column sidebar variant: profile, skills and social
// profiles in the left column; education, experience and projects on the
// right. Header carries the avatar and contact line.
type layoutA struct{}

func (l *layoutA) ID() string   { return LayoutA }
func (l *layoutA) Name() string { return "Classic Sidebar" }
func (l *layoutA) Description() string {
	return "Two-column layout with a profile sidebar and teal section accents."
}

func (l *layoutA) Render(data *types.CVData) string {
	var b strings.Builder

	b.WriteString(`<div class="cv-wrapper layout-a"><div class="cv-container">`)
	l.writeHeader(&b, data.BasicDetails)
	b.WriteString(`<div class="content">`)

	b.WriteString(`<div class="left-column">`)
	l.writeSummary(&b, data.BasicDetails.Summary)
	l.writeSkills(&b, data.Skills)
	l.writeSocialProfiles(&b, data.SocialProfiles)
	b.WriteString(`</div>`)

	b.WriteString(`<div class="right-column">`)
	l.writeEducation(&b, data.Education)
	l.writeExperience(&b, data.Experience)
	l.writeProjects(&b, data.Projects)
	b.WriteString(`</div>`)

	b.WriteString(`</div></div></div>`)
	return b.String()
}

func (l *layoutA) writeHeader(b *strings.Builder, d types.BasicDetails) {
	name := fullName(d)

	b.WriteString(`<div class="header">`)
	if d.Image != "" {
		fmt.Fprintf(b, `<img class="profile-img" src="%s" alt="Profile"/>`, EscapeHTML(d.Image))
	} else {
		fmt.Fprintf(b, `<div class="profile-img avatar-placeholder">%s</div>`, EscapeHTML(initials(name)))
	}
	fmt.Fprintf(b, `<h1 class="basic-name">%s</h1>`, EscapeHTML(name))

	b.WriteString(`<div class="basic-contact">`)
	if d.Email != "" {
		fmt.Fprintf(b, `<span class="contact-item">%s</span>`, EscapeHTML(d.Email))
	}
	if d.Phone != "" {
		fmt.Fprintf(b, `<span class="contact-item">%s</span>`, EscapeHTML(d.Phone))
	}
	if location := joinPresent(", ", d.City, d.State); location != "" {
		fmt.Fprintf(b, `<span class="contact-item">%s</span>`, EscapeHTML(location))
	}
	b.WriteString(`</div></div>`)
}

func (l *layoutA) writeSectionTitle(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, title)
}

func (l *layoutA) writeSummary(b *strings.Builder, summary string) {
	b.WriteString(`<div class="section profile">`)
	l.writeSectionTitle(b, "Profile")
	if summary != "" {
		fmt.Fprintf(b, `<p class="profile-para">%s</p>`, EscapeHTML(summary))
	} else {
		b.WriteString(`<div class="empty-state">No profile summary</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutA) writeSkills(b *strings.Builder, skills []types.Skill) {
	b.WriteString(`<div class="section skills">`)
	l.writeSectionTitle(b, "Skills")
	if len(skills) > 0 {
		for _, s := range skills {
			b.WriteString(`<div class="skill-item">`)
			fmt.Fprintf(b, `<span class="skill-name">%s</span>`, EscapeHTML(s.Name))
			fmt.Fprintf(b, `<div class="progress-bar"><div class="progress-fill" style="width:%.0f%%"></div></div>`, clampPercent(s.Percentage))
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No skills added</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutA) writeSocialProfiles(b *strings.Builder, profiles []types.SocialProfile) {
	b.WriteString(`<div class="section social">`)
	l.writeSectionTitle(b, "Social Profiles")
	if len(profiles) > 0 {
		b.WriteString(`<ul class="social-list">`)
		for _, p := range profiles {
			b.WriteString(`<li class="social-item">`)
			fmt.Fprintf(b, `<span class="social-platform">%s: </span>`, EscapeHTML(p.Platform))
			fmt.Fprintf(b, `<a class="social-link" href="%s">%s</a>`, EscapeHTML(p.URL), EscapeHTML(p.URL))
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	} else {
		b.WriteString(`<div class="empty-state">No social profiles</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutA) writeEducation(b *strings.Builder, education []types.Education) {
	b.WriteString(`<div class="section education">`)
	l.writeSectionTitle(b, "Education")
	if hasEducationContent(education) {
		for _, edu := range education {
			b.WriteString(`<div class="entry">`)
			fmt.Fprintf(b, `<div class="entry-title">%s</div>`, EscapeHTML(edu.Degree))
			fmt.Fprintf(b, `<div class="entry-subtitle">%s</div>`, EscapeHTML(edu.Institution))
			if edu.StartDate != "" {
				fmt.Fprintf(b, `<div class="entry-meta">%s</div>`, EscapeHTML(dateSpan(edu.StartDate, edu.EndDate)))
			}
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No education history</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutA) writeExperience(b *strings.Builder, experience []types.Experience) {
	b.WriteString(`<div class="section experience">`)
	l.writeSectionTitle(b, "Experience")
	if len(experience) > 0 {
		for _, exp := range experience {
			b.WriteString(`<div class="entry">`)
			fmt.Fprintf(b, `<div class="entry-title">%s</div>`, EscapeHTML(exp.Position))
			fmt.Fprintf(b, `<div class="entry-subtitle">%s</div>`, EscapeHTML(exp.Organization))
			if exp.StartDate != "" {
				end := ""
				if exp.EndDate != nil {
					end = *exp.EndDate
				}
				meta := dateSpan(exp.StartDate, end)
				if exp.Location != "" {
					meta += " | " + exp.Location
				}
				fmt.Fprintf(b, `<div class="entry-meta">%s</div>`, EscapeHTML(meta))
			}
			writeTagChips(b, exp.Technologies)
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No work experience</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutA) writeProjects(b *strings.Builder, projects []types.Project) {
	b.WriteString(`<div class="section projects">`)
	l.writeSectionTitle(b, "Projects")
	if len(projects) > 0 {
		for _, p := range projects {
			b.WriteString(`<div class="entry">`)
			fmt.Fprintf(b, `<div class="entry-title">%s</div>`, EscapeHTML(p.Title))
			if p.Duration != "" {
				fmt.Fprintf(b, `<div class="entry-meta">%s</div>`, EscapeHTML(p.Duration))
			}
			writeTagChips(b, p.Technologies)
			if p.Description != "" {
				fmt.Fprintf(b, `<p class="entry-desc">%s</p>`, EscapeHTML(p.Description))
			}
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No projects</div>`)
	}
	b.WriteString(`</div>`)
}

// hasEducationContent reports whether the education list has anything worth
// rendering. A single all-blank row (the editor's initial state) counts as
// empty.
func hasEducationContent(education []types.Education) bool {
	if len(education) == 0 {
		return false
	}
	return education[0].Institution != "" || education[0].Degree != ""
}

// writeTagChips renders a technology list as ordered chips. Order is
// preserved as entered and duplicates are kept.
func writeTagChips(b *strings.Builder, tags []string) {
	if len(tags) == 0 {
		return
	}
	b.WriteString(`<div class="tech-chips">`)
	for _, tag := range tags {
		fmt.Fprintf(b, `<span class="chip">%s</span>`, EscapeHTML(tag))
	}
	b.WriteString(`</div>`)
}

// clampPercent bounds a proficiency value to the renderable 0-100 range.
func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
