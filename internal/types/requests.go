package types

// ScoreRequest is the body of POST /scores. When Resume is nil the caller's stored resume is scored.
type ScoreRequest struct {
	Resume     *ParsedResume `json:"resume,omitempty"`
	RawText    string        `json:"raw_text,omitempty" validate:"max=100000"`
	TargetRole string        `json:"target_role,omitempty" validate:"max=200"`
	Location   string        `json:"location,omitempty" validate:"max=200"`
	Industry   string        `json:"industry,omitempty" validate:"max=200"`
}

// SaveResumeRequest is the body of PUT /users/me/resume.
type SaveResumeRequest struct {
	Resume  *ParsedResume `json:"resume" validate:"required"`
	RawText string        `json:"raw_text,omitempty" validate:"max=100000"`
}

// ParseResumeRequest is the body of POST /users/me/resume/parse.
type ParseResumeRequest struct {
	Text string `json:"text" validate:"required,min=20,max=100000"`
}

// ScoreJob is the message consumed by the async scoring worker.
type ScoreJob struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	ObjectKey  string `json:"object_key" validate:"required"`
	Mime       string `json:"mime" validate:"required"`
	TargetRole string `json:"target_role,omitempty"`
	Location   string `json:"location,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SaveResumeRequest using the validator.
func (r *SaveResumeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ParseResumeRequest using the validator.
func (r *ParseResumeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ScoreJob using the validator.
func (j *ScoreJob) Validate() error {
	return validate.Struct(j)
}
