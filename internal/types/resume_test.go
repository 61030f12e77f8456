package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeDocument_JSONUsesClientFieldNames(t *testing.T) {
	doc := ResumeDocument{
		PersonalInfo: PersonalInfo{FullName: "Ada Lovelace", Summary: "Engineer"},
		Experience: []ExperienceEntry{
			{ID: "1", Company: "Analytical Engines", StartDate: "2020-01", Current: true, Description: []string{"Wrote programs"}},
		},
		Projects: []ProjectEntry{{ID: "p1", Name: "Notes", Technologies: []string{"Go"}, GitHub: "https://example.com/notes"}},
	}

	jsonBytes, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(jsonBytes)
	assert.Contains(t, s, `"personalInfo"`)
	assert.Contains(t, s, `"fullName":"Ada Lovelace"`)
	assert.Contains(t, s, `"startDate":"2020-01"`)
	assert.Contains(t, s, `"current":true`)
	assert.Contains(t, s, `"github":"https://example.com/notes"`)
	assert.NotContains(t, s, `"website"`)
}

func TestResumeDocument_JSONUnmarshaling(t *testing.T) {
	jsonInput := `{
		"personalInfo": {"fullName": "Grace Hopper", "email": "grace@example.com", "phone": "555", "location": "NYC", "summary": "Admiral"},
		"experience": [{"id": "e1", "company": "Navy", "position": "Officer", "location": "DC", "startDate": "1943-01", "endDate": "", "current": true, "description": ["Built compilers"]}],
		"education": [{"id": "ed1", "institution": "Yale", "degree": "PhD", "field": "Mathematics", "location": "CT", "startDate": "1930-09", "endDate": "1934-06", "gpa": "4.0"}],
		"skills": [{"id": "s1", "name": "COBOL", "category": "Languages", "level": "Expert"}],
		"projects": [],
		"certifications": [{"id": "c1", "name": "Cert", "issuer": "Org", "date": "1950-01"}]
	}`

	var doc ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &doc))

	assert.Equal(t, "Grace Hopper", doc.PersonalInfo.FullName)
	require.Len(t, doc.Experience, 1)
	assert.True(t, doc.Experience[0].Current)
	assert.Equal(t, []string{"Built compilers"}, doc.Experience[0].Description)
	require.Len(t, doc.Skills, 1)
	assert.Equal(t, SkillExpert, doc.Skills[0].Level)
	assert.Equal(t, "4.0", doc.Education[0].GPA)
	assert.Equal(t, "1950-01", doc.Certifications[0].Date)
}

func TestPersonalInfo_Validate(t *testing.T) {
	complete := PersonalInfo{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+44 20 0000 0000",
		Location: "London",
		Summary:  "Mathematician",
	}
	assert.NoError(t, complete.Validate())

	tests := []struct {
		name   string
		mutate func(p *PersonalInfo)
	}{
		{"missing name", func(p *PersonalInfo) { p.FullName = "" }},
		{"missing email", func(p *PersonalInfo) { p.Email = "" }},
		{"malformed email", func(p *PersonalInfo) { p.Email = "not-an-email" }},
		{"missing phone", func(p *PersonalInfo) { p.Phone = "" }},
		{"missing location", func(p *PersonalInfo) { p.Location = "" }},
		{"missing summary", func(p *PersonalInfo) { p.Summary = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := complete
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestPersonalInfo_OptionalLinksNotRequired(t *testing.T) {
	p := PersonalInfo{FullName: "A", Email: "a@example.com", Phone: "1", Location: "X", Summary: "S"}
	assert.NoError(t, p.Validate())
}

func TestParseSkillLevel(t *testing.T) {
	for _, level := range SkillLevels {
		parsed, err := ParseSkillLevel(string(level))
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}

	_, err := ParseSkillLevel("expert")
	assert.Error(t, err, "levels are case-sensitive")
	_, err = ParseSkillLevel("Guru")
	assert.Error(t, err)
}

func TestResumeDocument_CloneIsDeep(t *testing.T) {
	doc := &ResumeDocument{
		Experience: []ExperienceEntry{{ID: "e1", Description: []string{"a"}}},
		Projects:   []ProjectEntry{{ID: "p1", Technologies: []string{"Go"}}},
	}

	clone := doc.Clone()
	clone.Experience[0].Description[0] = "changed"
	clone.Projects[0].Technologies[0] = "Rust"
	clone.PersonalInfo.FullName = "changed"

	assert.Equal(t, "a", doc.Experience[0].Description[0])
	assert.Equal(t, "Go", doc.Projects[0].Technologies[0])
	assert.Empty(t, doc.PersonalInfo.FullName)
}

func TestResumeDocument_CloneNil(t *testing.T) {
	var doc *ResumeDocument
	assert.Nil(t, doc.Clone())
}

func TestNewEntryConstructors(t *testing.T) {
	exp := NewExperienceEntry()
	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, []string{""}, exp.Description)

	a, b := NewEducationEntry(), NewEducationEntry()
	assert.NotEqual(t, a.ID, b.ID)

	skill := NewSkillEntry("Go", "Languages", SkillAdvanced)
	assert.NotEmpty(t, skill.ID)
	assert.Equal(t, SkillAdvanced, skill.Level)

	project := NewProjectEntry()
	assert.NotNil(t, project.Technologies)
	assert.NotEmpty(t, NewCertificationEntry().ID)
}

func TestNewResumeDocument_EmptyLists(t *testing.T) {
	doc := NewResumeDocument()
	jsonBytes, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"experience":[]`)
	assert.Contains(t, string(jsonBytes), `"certifications":[]`)
}
