package projector

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func strPtr(s string) *string { return &s }

// sampleCVData builds a fully populated CV model.
func sampleCVData() *types.CVData {
	return &types.CVData{
		BasicDetails: types.BasicDetails{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Phone:     "555-0100",
			City:      "Portland",
			State:     "OR",
			Summary:   "Backend engineer with a focus on data pipelines.",
		},
		Education: []types.Education{
			{ID: "e1", Degree: "BSc Computer Science", Institution: "State University", Percentage: 87, StartDate: "2014-09-01", EndDate: "2018-06-15"},
		},
		Experience: []types.Experience{
			{ID: "x1", Organization: "Acme Corp", Position: "Software Engineer", Location: "Portland", StartDate: "2018-07-01", EndDate: strPtr("2021-03-31"), Technologies: []string{"Go", "Postgres"}},
			{ID: "x2", Organization: "Widgets Inc", Position: "Senior Engineer", StartDate: "2021-04-01", EndDate: nil, Technologies: []string{"React", "React", "Node"}},
		},
		Projects: []types.Project{
			{ID: "p1", Title: "Ingest Service", TeamSize: 4, Duration: "6 months", Technologies: []string{"Go"}, Description: "Streaming ingest pipeline."},
		},
		Skills: []types.Skill{
			{ID: "s1", Name: "Go", Percentage: 90},
			{ID: "s2", Name: "SQL", Percentage: 75},
		},
		SocialProfiles: []types.SocialProfile{
			{ID: "sp1", Platform: "GitHub", URL: "https://github.com/janedoe"},
		},
	}
}

func TestVariants_OrderAndIdentity(t *testing.T) {
	vs := Variants()
	require.Len(t, vs, 3)
	assert.Equal(t, LayoutA, vs[0].ID())
	assert.Equal(t, LayoutB, vs[1].ID())
	assert.Equal(t, LayoutC, vs[2].ID())
	for _, v := range vs {
		assert.NotEmpty(t, v.Name())
		assert.NotEmpty(t, v.Description())
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"layout-a", LayoutA, true},
		{"Layout-A", LayoutA, true},
		{"LAYOUT-B", LayoutB, true},
		{"  layout-c  ", LayoutC, true},
		{"layout-d", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		v, ok := Lookup(tt.input)
		assert.Equal(t, tt.ok, ok, "Lookup(%q)", tt.input)
		if ok {
			assert.Equal(t, tt.want, v.ID())
		}
	}
}

func TestProject_UnknownLayoutFallback(t *testing.T) {
	doc := Project(sampleCVData(), "layout-z")
	assert.True(t, doc.Missing)
	assert.Equal(t, "layout-z", doc.LayoutID)
	assert.Contains(t, doc.HTML, FallbackMessage)

	q := parseHTML(t, doc.HTML)
	assert.Equal(t, 1, q.Find(".template-missing").Length())
}

func TestProject_CaseInsensitiveSelection(t *testing.T) {
	doc := Project(sampleCVData(), "Layout-A")
	assert.False(t, doc.Missing)
	assert.Equal(t, LayoutA, doc.LayoutID)
}

func TestProject_NilDataPlaceholders(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.ID(), func(t *testing.T) {
			doc := Project(nil, v.ID())
			require.False(t, doc.Missing)

			q := parseHTML(t, doc.HTML)
			assert.Contains(t, q.Find("h1").Text(), "Your Name")
			assert.Contains(t, doc.HTML, "No skills added")
			assert.Contains(t, doc.HTML, "No education history")
			assert.Contains(t, doc.HTML, "No work experience")
			assert.Contains(t, doc.HTML, "No projects")
		})
	}
}

func TestProject_Deterministic(t *testing.T) {
	data := sampleCVData()
	for _, v := range Variants() {
		first := Project(data, v.ID())
		second := Project(data, v.ID())
		assert.Equal(t, first.HTML, second.HTML, "variant %s", v.ID())
	}
}

func TestLayoutA_FullDocument(t *testing.T) {
	doc := Project(sampleCVData(), LayoutA)
	q := parseHTML(t, doc.HTML)

	assert.Equal(t, 1, q.Find(".layout-a").Length())
	assert.Equal(t, "Jane Doe", q.Find("h1.basic-name").Text())

	// Sidebar sections
	assert.Contains(t, q.Find(".profile-para").Text(), "Backend engineer")
	assert.Equal(t, 2, q.Find(".skill-item").Length())
	bar := q.Find(".progress-fill").First()
	style, _ := bar.Attr("style")
	assert.Contains(t, style, "width:90%")

	// Main column
	assert.Equal(t, 1, q.Find(".section.education .entry").Length())
	assert.Equal(t, 2, q.Find(".section.experience .entry").Length())
	assert.Equal(t, 1, q.Find(".section.projects .entry").Length())

	// No placeholder text anywhere
	assert.Equal(t, 0, q.Find(".empty-state").Length())
}

func TestLayoutA_AvatarPlaceholderWhenNoImage(t *testing.T) {
	data := sampleCVData()
	data.BasicDetails.Image = ""
	q := parseHTML(t, Project(data, LayoutA).HTML)

	assert.Equal(t, 0, q.Find("img.profile-img").Length())
	assert.Equal(t, "JD", q.Find(".avatar-placeholder").Text())
}

func TestLayoutA_ImageWhenPresent(t *testing.T) {
	data := sampleCVData()
	data.BasicDetails.Image = "https://cdn.example.com/jane.png"
	q := parseHTML(t, Project(data, LayoutA).HTML)

	src, ok := q.Find("img.profile-img").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/jane.png", src)
	assert.Equal(t, 0, q.Find(".avatar-placeholder").Length())
}

func TestLayoutB_AvatarAndContactPanel(t *testing.T) {
	data := sampleCVData()
	q := parseHTML(t, Project(data, LayoutB).HTML)

	assert.Equal(t, 1, q.Find(".layout-b").Length())
	assert.Equal(t, "JD", q.Find(".avatar-placeholder").Text())
	assert.Contains(t, q.Find(".section.contact").Text(), "jane@example.com")
	// This variant lists skills without proficiency bars.
	assert.Equal(t, 2, q.Find(".skills-list-item").Length())
	assert.Equal(t, 0, q.Find(".progress-fill").Length())
}

func TestLayoutC_NoImageNoSocial(t *testing.T) {
	data := sampleCVData()
	data.BasicDetails.Image = "https://cdn.example.com/jane.png"
	q := parseHTML(t, Project(data, LayoutC).HTML)

	assert.Equal(t, 1, q.Find(".layout-c").Length())
	assert.Equal(t, 0, q.Find("img.profile-img").Length())
	assert.Equal(t, 0, q.Find(".section.social").Length())
	// Skills join into a single comma-separated line.
	assert.Equal(t, "Go, SQL", q.Find(".skill-list").Text())
}

func TestOngoingExperienceRendersPresent(t *testing.T) {
	data := sampleCVData()
	for _, v := range Variants() {
		t.Run(v.ID(), func(t *testing.T) {
			html := Project(data, v.ID()).HTML
			assert.Contains(t, html, OngoingMarker)
		})
	}
}

func TestSkillOrderPreserved(t *testing.T) {
	data := &types.CVData{
		Skills: []types.Skill{
			{ID: "1", Name: "Zig", Percentage: 10},
			{ID: "2", Name: "Ada", Percentage: 20},
			{ID: "3", Name: "ML", Percentage: 30},
		},
	}

	q := parseHTML(t, Project(data, LayoutA).HTML)
	var names []string
	q.Find(".skill-name").Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Text())
	})
	assert.Equal(t, []string{"Zig", "Ada", "ML"}, names)

	assert.Equal(t, "Zig, Ada, ML", parseHTML(t, Project(data, LayoutC).HTML).Find(".skill-list").Text())
}

func TestEducationOrderPreserved(t *testing.T) {
	data := &types.CVData{
		Education: []types.Education{
			{ID: "1", Degree: "Z-Degree", Institution: "Zeta College"},
			{ID: "2", Degree: "A-Degree", Institution: "Alpha College"},
			{ID: "3", Degree: "M-Degree", Institution: "Mid College"},
		},
	}
	want := []string{"Z-Degree", "A-Degree", "M-Degree"}

	tests := []struct {
		layoutID string
		selector string
	}{
		{LayoutA, ".education .entry-title"},
		{LayoutB, ".education .entry-title"},
		{LayoutC, ".education .degree"},
	}

	for _, tt := range tests {
		t.Run(tt.layoutID, func(t *testing.T) {
			q := parseHTML(t, Project(data, tt.layoutID).HTML)
			var degrees []string
			q.Find(tt.selector).Each(func(_ int, s *goquery.Selection) {
				degrees = append(degrees, s.Text())
			})
			assert.Equal(t, want, degrees, "entries must keep input order, not sort")
		})
	}
}

func TestLayoutA_EducationOnlyScenario(t *testing.T) {
	// A mid-edit model: name and one education entry filled in, no
	// experience yet.
	data := &types.CVData{
		BasicDetails: types.BasicDetails{FirstName: "Jane", LastName: "Doe"},
		Education: []types.Education{
			{ID: "e1", Degree: "B.Sc", Institution: "State University"},
		},
	}

	html := Project(data, "layout-A").HTML
	assert.Contains(t, html, "Jane Doe")

	q := parseHTML(t, html)
	edu := q.Find(".education")
	assert.Contains(t, edu.Find(".entry-title").Text(), "B.Sc")
	assert.Contains(t, edu.Find(".entry-subtitle").Text(), "State University")
	assert.Zero(t, edu.Find(".empty-state").Length())
	assert.Equal(t, "No work experience", q.Find(".experience .empty-state").Text())
}

func TestTechnologyChipsKeepDuplicatesInOrder(t *testing.T) {
	data := &types.CVData{
		Experience: []types.Experience{
			{ID: "x", Organization: "Acme", Position: "Dev", StartDate: "2020-01-01", Technologies: []string{"React", "React", "Node"}},
		},
	}

	q := parseHTML(t, Project(data, LayoutA).HTML)
	var chips []string
	q.Find(".chip").Each(func(_ int, s *goquery.Selection) {
		chips = append(chips, s.Text())
	})
	assert.Equal(t, []string{"React", "React", "Node"}, chips)
}

func TestBlankEducationRowCountsAsEmpty(t *testing.T) {
	data := &types.CVData{
		Education: []types.Education{{ID: "e1"}},
	}
	html := Project(data, LayoutA).HTML
	assert.Contains(t, html, "No education history")
}

func TestUserContentIsEscaped(t *testing.T) {
	data := &types.CVData{
		BasicDetails: types.BasicDetails{
			FirstName: "<script>alert(1)</script>",
			LastName:  "Doe",
		},
	}
	for _, v := range Variants() {
		html := Project(data, v.ID()).HTML
		assert.NotContains(t, html, "<script>", "variant %s", v.ID())
		assert.Contains(t, html, "&lt;script&gt;")
	}
}

func TestFullName_Fallback(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{"both", "Jane", "Doe", "Jane Doe"},
		{"first only", "Jane", "", "Jane"},
		{"last only", "", "Doe", "Doe"},
		{"neither", "", "", "Your Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fullName(types.BasicDetails{FirstName: tt.first, LastName: tt.last})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "JD"},
		{"Jane", "J"},
		{"Jane Marie Doe", "JM"},
		{"Your Name", "YN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, initials(tt.in), "initials(%q)", tt.in)
	}
}

func TestDateSpan(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"both", "2020-01-01", "2021-06-30", "2020-01-01 - 2021-06-30"},
		{"ongoing", "2020-01-01", "", "2020-01-01 - " + OngoingMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dateSpan(tt.start, tt.end))
		})
	}
}
