// Package hclseed loads catalog seed files written in HCL and applies them
// to the store as idempotent upserts.
package hclseed

// Seed-file schema. One file may declare any mix of companies, plans and
// products; plans and plan conditions reference plans by (company,
// service_type, name), never by raw id.

type seedFile struct {
	Companies []companyBlock `hcl:"company,block"`
	Plans     []planBlock    `hcl:"plan,block"`
	Products  []productBlock `hcl:"product,block"`
}

type companyBlock struct {
	Name string `hcl:"name,label"`
	ID   int64  `hcl:"id"`
}

type planBlock struct {
	Company     string `hcl:"company"`
	ServiceType string `hcl:"service_type"`
	Name        string `hcl:"name"`
	MonthlyFee  int64  `hcl:"monthly_fee"`
}

type productBlock struct {
	Name    string `hcl:"name,label"`
	Company string `hcl:"company"`

	Description string `hcl:"description,optional"`

	MinMobileLines   int  `hcl:"min_mobile_lines,optional"`
	MaxMobileLines   *int `hcl:"max_mobile_lines,optional"`
	MinInternetLines int  `hcl:"min_internet_lines,optional"`
	MaxInternetLines *int `hcl:"max_internet_lines,optional"`
	MinTVLines       int  `hcl:"min_tv_lines,optional"`
	MaxTVLines       *int `hcl:"max_tv_lines,optional"`

	JoinCondition      string `hcl:"join_condition,optional"`
	ApplicantScope     string `hcl:"applicant_scope,optional"`
	ApplicationChannel string `hcl:"application_channel,optional"`
	URL                string `hcl:"url,optional"`
	Available          *bool  `hcl:"available,optional"`

	Eligibilities []eligibilityBlock  `hcl:"eligibility,block"`
	RequiredRoles []requiredRoleBlock `hcl:"required_role,block"`
	Discounts     []discountBlock     `hcl:"discount,block"`
	Benefits      []benefitBlock      `hcl:"benefit,block"`
}

type eligibilityBlock struct {
	Company     string `hcl:"company"`
	ServiceType string `hcl:"service_type"`
	Plan        string `hcl:"plan"`
	BaseRole    string `hcl:"base_role,optional"`
	MinLines    int    `hcl:"min_lines,optional"`
	MaxLines    *int   `hcl:"max_lines,optional"`
}

type requiredRoleBlock struct {
	Role  string `hcl:"role,label"`
	Count *int   `hcl:"count,optional"`
}

type benefitBlock struct {
	Label       string `hcl:"label,label"`
	Description string `hcl:"description,optional"`
}

type discountBlock struct {
	Name string `hcl:"name,label"`

	Type  string `hcl:"type"`
	Value int64  `hcl:"value"`
	Unit  string `hcl:"unit"`

	AppliesTo    []string `hcl:"applies_to,optional"`
	LineSequence string   `hcl:"line_sequence,optional"`
	Note         string   `hcl:"note,optional"`

	PlanConditions      []planConditionBlock      `hcl:"plan_condition,block"`
	LineCountConditions []lineCountConditionBlock `hcl:"line_count_condition,block"`
}

type planConditionBlock struct {
	Company     string `hcl:"company"`
	ServiceType string `hcl:"service_type"`
	Plan        string `hcl:"plan"`
	BaseRole    string `hcl:"base_role,optional"`
	Text        string `hcl:"text,optional"`
	Value       *int64 `hcl:"value,optional"`
	Unit        string `hcl:"unit,optional"`
}

type lineCountConditionBlock struct {
	MinLine int    `hcl:"min_line"`
	MaxLine *int   `hcl:"max_line,optional"`
	Value   *int64 `hcl:"value,optional"`
	Unit    string `hcl:"unit,optional"`
	PerLine bool   `hcl:"per_line,optional"`
}
