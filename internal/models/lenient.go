package models

import "encoding/json"

// Generation payloads and profile entries decode leniently: a field of
// the wrong JSON type is dropped instead of failing the whole request.
// The top level must still be an object.

type looseObject map[string]json.RawMessage

func (o looseObject) str(key string) string {
	raw, ok := o[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (o looseObject) strList(key string) []string {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

func (p *GenerationPayload) UnmarshalJSON(data []byte) error {
	var o looseObject
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	p.Name = o.str("name")
	p.Email = o.str("email")
	p.Phone = o.str("phone")
	p.DesiredJob = o.str("desired_job")
	p.Keywords = o.strList("keywords")
	p.Skills = o.strList("skills")
	p.Education = looseEducationList(o["education"])
	p.Experiences = looseExperienceList(o["experiences"])
	p.Projects = looseProjectList(o["projects"])
	return nil
}

func looseEducationList(raw json.RawMessage) []EducationEntry {
	if raw == nil {
		return nil
	}
	var entries []EducationEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}

func looseExperienceList(raw json.RawMessage) []ExperienceEntry {
	if raw == nil {
		return nil
	}
	var entries []ExperienceEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}

func looseProjectList(raw json.RawMessage) []ProjectEntry {
	if raw == nil {
		return nil
	}
	var entries []ProjectEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}

func (e *EducationEntry) UnmarshalJSON(data []byte) error {
	var o looseObject
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	e.ID = o.str("id")
	e.School = o.str("school")
	e.Major = o.str("major")
	e.Degree = o.str("degree")
	e.StartDate = o.str("start_date")
	e.EndDate = o.str("end_date")
	return nil
}

func (e *ExperienceEntry) UnmarshalJSON(data []byte) error {
	var o looseObject
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	e.ID = o.str("id")
	e.Company = o.str("company")
	e.Position = o.str("position")
	e.Description = o.str("description")
	e.StartDate = o.str("start_date")
	e.EndDate = o.str("end_date")
	return nil
}

func (e *CertificateEntry) UnmarshalJSON(data []byte) error {
	var o looseObject
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	e.ID = o.str("id")
	e.Name = o.str("name")
	e.Issuer = o.str("issuer")
	e.IssuedAt = o.str("issued_at")
	return nil
}

func (e *ProjectEntry) UnmarshalJSON(data []byte) error {
	var o looseObject
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	e.ID = o.str("id")
	e.Title = o.str("title")
	e.Description = o.str("description")
	e.TechStack = o.strList("tech_stack")
	e.URL = o.str("url")
	e.StartDate = o.str("start_date")
	e.EndDate = o.str("end_date")
	return nil
}

// The generate requests embed GenerationPayload, whose UnmarshalJSON
// would otherwise be promoted and swallow the wrapper fields.
func (r *GenerateResumeRequest) UnmarshalJSON(data []byte) error {
	var o looseObject
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	r.Title = o.str("title")
	return json.Unmarshal(data, &r.GenerationPayload)
}

func (r *GeneratePortfolioRequest) UnmarshalJSON(data []byte) error {
	var o looseObject
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	r.Title = o.str("title")
	r.StylePrompt = o.str("style_prompt")
	return json.Unmarshal(data, &r.GenerationPayload)
}
