package domain

import "fmt"

// Gender values accepted by the analyze endpoint.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// BiomarkerInput 分析请求的十三项输入指标
type BiomarkerInput struct {
	Albumin     float64 `json:"albumin"`     // g/dL
	Creatinine  float64 `json:"creatinine"`  // mg/dL
	Glucose     float64 `json:"glucose"`     // mg/dL
	CRP         float64 `json:"crp"`         // mg/L
	MCV         float64 `json:"mcv"`         // fL
	RDW         float64 `json:"rdw"`         // %
	ALP         float64 `json:"alp"`         // U/L
	WBC         float64 `json:"wbc"`         // x10^9/L
	Lymphocytes float64 `json:"lymphocytes"` // %
	Age         int     `json:"age"`         // years
	Gender      string  `json:"gender"`      // Male / Female
	Height      float64 `json:"height"`      // cm
	Weight      float64 `json:"weight"`      // kg
}

// Validate 校验输入指标是否完整且在合理范围内
func (in *BiomarkerInput) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"albumin", in.Albumin},
		{"creatinine", in.Creatinine},
		{"glucose", in.Glucose},
		{"crp", in.CRP},
		{"mcv", in.MCV},
		{"rdw", in.RDW},
		{"alp", in.ALP},
		{"wbc", in.WBC},
		{"lymphocytes", in.Lymphocytes},
		{"height", in.Height},
		{"weight", in.Weight},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("field %q must be a positive number", c.name)
		}
	}
	if in.Age <= 0 || in.Age > 130 {
		return fmt.Errorf("field %q must be between 1 and 130", "age")
	}
	if in.Gender != GenderMale && in.Gender != GenderFemale {
		return fmt.Errorf("field %q must be %q or %q", "gender", GenderMale, GenderFemale)
	}
	return nil
}

// BiomarkerRow 指标表格中的一行
type BiomarkerRow struct {
	Biomarker string `json:"biomarker"`
	Value     string `json:"value"`
	Status    string `json:"status"`
	Insight   string `json:"insight"`
}

// ExecutiveSummary 执行摘要
type ExecutiveSummary struct {
	TopPriorities []string `json:"top_priorities"`
	KeyStrengths  []string `json:"key_strengths"`
}

// SystemAnalysis 系统层面的分析结论
type SystemAnalysis struct {
	Status      string `json:"status"`
	Explanation string `json:"explanation"`
}

// ActionPlan 固定四类行动建议
type ActionPlan struct {
	Nutrition string `json:"nutrition"`
	Lifestyle string `json:"lifestyle"`
	Medical   string `json:"medical"`
	Testing   string `json:"testing"`
}

// BiomarkerReport 从模型 markdown 回复中抽取出的结构化报告。
// 所有顶层字段恒定存在，抽取不到时保持各自的默认值。
type BiomarkerReport struct {
	NormalRanges      map[string]string `json:"normal_ranges"`
	BiomarkerTable    []BiomarkerRow    `json:"biomarker_table"`
	ExecutiveSummary  ExecutiveSummary  `json:"executive_summary"`
	SystemAnalysis    SystemAnalysis    `json:"system_analysis"`
	ActionPlan        ActionPlan        `json:"action_plan"`
	InteractionAlerts []string          `json:"interaction_alerts"`
}

// NewBiomarkerReport 返回带默认值的空报告
func NewBiomarkerReport() *BiomarkerReport {
	return &BiomarkerReport{
		NormalRanges:   map[string]string{},
		BiomarkerTable: []BiomarkerRow{},
		ExecutiveSummary: ExecutiveSummary{
			TopPriorities: []string{},
			KeyStrengths:  []string{},
		},
		SystemAnalysis: SystemAnalysis{
			Status:      "Unknown",
			Explanation: "No system analysis provided.",
		},
		InteractionAlerts: []string{},
	}
}
