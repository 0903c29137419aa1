package projector

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// layoutB is the photo-header card variant: a large photo header, then a
// card-style left column (contact, profile, skills, social) next to the
// chronological right column (experience, education, projects).
type layoutB struct{}

func (l *layoutB) ID() string   { return LayoutB }
func (l *layoutB) Name() string { return "Photo Card" }
func (l *layoutB) Description() string {
	return "Photo-header card layout with a dark contact panel and chronological main column."
}

func (l *layoutB) Render(data *types.CVData) string {
	var b strings.Builder

	b.WriteString(`<div class="cv-wrapper layout-b"><div class="cv-container">`)
	l.writeHeader(&b, data.BasicDetails)
	b.WriteString(`<div class="content">`)

	b.WriteString(`<div class="left-column">`)
	l.writeContact(&b, data.BasicDetails)
	l.writeSummary(&b, data.BasicDetails.Summary)
	l.writeSkills(&b, data.Skills)
	l.writeSocialProfiles(&b, data.SocialProfiles)
	b.WriteString(`</div>`)

	b.WriteString(`<div class="right-column">`)
	l.writeExperience(&b, data.Experience)
	l.writeEducation(&b, data.Education)
	l.writeProjects(&b, data.Projects)
	b.WriteString(`</div>`)

	b.WriteString(`</div></div></div>`)
	return b.String()
}

func (l *layoutB) writeHeader(b *strings.Builder, d types.BasicDetails) {
	name := fullName(d)

	b.WriteString(`<div class="header">`)
	if d.Image != "" {
		fmt.Fprintf(b, `<img class="profile-img" src="%s" alt="Profile"/>`, EscapeHTML(d.Image))
	} else {
		fmt.Fprintf(b, `<div class="profile-img avatar-placeholder">%s</div>`, EscapeHTML(initials(name)))
	}
	fmt.Fprintf(b, `<div class="header-text"><h1 class="name">%s</h1></div>`, EscapeHTML(name))
	b.WriteString(`</div>`)
}

func (l *layoutB) writeSectionTitle(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, title)
}

func (l *layoutB) writeContact(b *strings.Builder, d types.BasicDetails) {
	b.WriteString(`<div class="section contact">`)
	l.writeSectionTitle(b, "Contact")
	if d.Phone != "" {
		fmt.Fprintf(b, `<div class="contact-item">%s</div>`, EscapeHTML(d.Phone))
	}
	if d.Email != "" {
		fmt.Fprintf(b, `<div class="contact-item">%s</div>`, EscapeHTML(d.Email))
	}
	if location := joinPresent(", ", d.Address, d.City, d.State, d.Pincode); location != "" {
		fmt.Fprintf(b, `<div class="contact-item">%s</div>`, EscapeHTML(location))
	}
	b.WriteString(`</div>`)
}

func (l *layoutB) writeSummary(b *strings.Builder, summary string) {
	b.WriteString(`<div class="section profile">`)
	l.writeSectionTitle(b, "Profile")
	if summary != "" {
		fmt.Fprintf(b, `<p class="profile-text">%s</p>`, EscapeHTML(summary))
	} else {
		b.WriteString(`<div class="empty-state">No profile summary</div>`)
	}
	b.WriteString(`</div>`)
}

// Skills render as a plain list here; this variant has no proficiency bars.
func (l *layoutB) writeSkills(b *strings.Builder, skills []types.Skill) {
	b.WriteString(`<div class="section skills">`)
	l.writeSectionTitle(b, "Skills")
	if len(skills) > 0 {
		b.WriteString(`<ul class="skills-list">`)
		for _, s := range skills {
			fmt.Fprintf(b, `<li class="skills-list-item">%s</li>`, EscapeHTML(s.Name))
		}
		b.WriteString(`</ul>`)
	} else {
		b.WriteString(`<div class="empty-state">No skills added</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutB) writeSocialProfiles(b *strings.Builder, profiles []types.SocialProfile) {
	b.WriteString(`<div class="section social">`)
	l.writeSectionTitle(b, "Social")
	if len(profiles) > 0 {
		for _, p := range profiles {
			b.WriteString(`<div class="social-item">`)
			fmt.Fprintf(b, `<span class="social-platform">%s</span>`, EscapeHTML(p.Platform))
			fmt.Fprintf(b, `<a class="social-link" href="%s">%s</a>`, EscapeHTML(p.URL), EscapeHTML(p.URL))
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No social profiles</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutB) writeExperience(b *strings.Builder, experience []types.Experience) {
	b.WriteString(`<div class="section experience">`)
	l.writeSectionTitle(b, "Experience")
	if len(experience) > 0 {
		for _, exp := range experience {
			b.WriteString(`<div class="entry">`)
			fmt.Fprintf(b, `<div class="entry-title">%s</div>`, EscapeHTML(exp.Position))
			fmt.Fprintf(b, `<div class="entry-company">%s</div>`, EscapeHTML(exp.Organization))
			if exp.StartDate != "" {
				end := ""
				if exp.EndDate != nil {
					end = *exp.EndDate
				}
				meta := dateSpan(exp.StartDate, end)
				if exp.Location != "" {
					meta += " | " + exp.Location
				}
				fmt.Fprintf(b, `<div class="entry-dates">%s</div>`, EscapeHTML(meta))
			}
			writeTagChips(b, exp.Technologies)
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No work experience</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutB) writeEducation(b *strings.Builder, education []types.Education) {
	b.WriteString(`<div class="section education">`)
	l.writeSectionTitle(b, "Education")
	if hasEducationContent(education) {
		for _, edu := range education {
			b.WriteString(`<div class="entry">`)
			fmt.Fprintf(b, `<div class="entry-title">%s</div>`, EscapeHTML(edu.Degree))
			fmt.Fprintf(b, `<div class="entry-company">%s</div>`, EscapeHTML(edu.Institution))
			if edu.StartDate != "" {
				fmt.Fprintf(b, `<div class="entry-dates">%s</div>`, EscapeHTML(dateSpan(edu.StartDate, edu.EndDate)))
			}
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="empty-state">No education history</div>`)
	}
	b.WriteString(`</div>`)
}

func (l *layoutB) writeProjects(b *strings.Builder, projects []types.Project) {
	b.WriteString(`<div class="section projects">`)
	l.writeSectionTitle(b, "Projects")
	if len(projects) > 0 {
		for _, p := range projects {
			b.WriteString(`<div class="entry">`)
			fmt.Fprintf(b, `<div class="entry-title">%s</div>`, EscapeHTML(p.Title))
			if p.Duration != "" {
				fmt.Fprintf(b, `<div class="entry-dates">%s</div>`, EscapeHTML(p.Duration))
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
