package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/biolens-ai/bioradar/internal/domain"
)

// sampleReport 按上游模型已知的版式构造的完整回复
const sampleReport = `Here is your health report.

Normal Ranges
- Albumin: 3.5-5.0 g/dL
- Creatinine: 0.7-1.3 mg/dL
- Glucose: 70–99 mg/dL

Biomarker Analysis
| Biomarker | Value | Status | Insight |
| --- | --- | --- | --- |
| Albumin | 4.5 | Normal | Supports fluid balance |
| Glucose | 160 | High | Suggests impaired glucose control |

Executive Summary
1. Address elevated fasting glucose
2. Recheck CRP in six weeks
3. Review ALP trend with your physician
- Albumin is Normal and supports liver function

System-Specific Analysis
- Status: Attention
- Explanation: Metabolic markers need follow-up.

Personalized Action Plan
- Nutrition: Reduce refined carbohydrates.
- Lifestyle: Walk 30 minutes daily.
- Medical: Discuss glucose control with your physician.
- Testing: Repeat fasting glucose in 3 months.
- Sleep: Aim for 8 hours.

Interaction Alerts
- High glucose may affect creatinine interpretation.
`

func TestReport_FullSample(t *testing.T) {
	report := Report(sampleReport)

	if got := report.NormalRanges["Glucose"]; got != "70–99 mg/dL" {
		t.Errorf("NormalRanges[Glucose] = %q, want %q", got, "70–99 mg/dL")
	}
	if len(report.NormalRanges) != 3 {
		t.Errorf("len(NormalRanges) = %d, want 3", len(report.NormalRanges))
	}

	if len(report.BiomarkerTable) != 2 {
		t.Fatalf("len(BiomarkerTable) = %d, want 2", len(report.BiomarkerTable))
	}
	row := report.BiomarkerTable[1]
	if row.Biomarker != "Glucose" || row.Value != "160" || row.Status != "High" || row.Insight != "Suggests impaired glucose control" {
		t.Errorf("BiomarkerTable[1] = %+v", row)
	}

	if len(report.ExecutiveSummary.TopPriorities) != 3 {
		t.Errorf("len(TopPriorities) = %d, want 3", len(report.ExecutiveSummary.TopPriorities))
	}
	if len(report.ExecutiveSummary.KeyStrengths) != 1 {
		t.Fatalf("len(KeyStrengths) = %d, want 1", len(report.ExecutiveSummary.KeyStrengths))
	}
	if got := report.ExecutiveSummary.KeyStrengths[0]; got != "Albumin is Normal and supports liver function" {
		t.Errorf("KeyStrengths[0] = %q", got)
	}

	if report.SystemAnalysis.Status != "Attention" {
		t.Errorf("SystemAnalysis.Status = %q, want %q", report.SystemAnalysis.Status, "Attention")
	}
	if report.SystemAnalysis.Explanation != "Metabolic markers need follow-up." {
		t.Errorf("SystemAnalysis.Explanation = %q", report.SystemAnalysis.Explanation)
	}

	if report.ActionPlan.Nutrition != "Reduce refined carbohydrates." {
		t.Errorf("ActionPlan.Nutrition = %q", report.ActionPlan.Nutrition)
	}
	if report.ActionPlan.Testing != "Repeat fasting glucose in 3 months." {
		t.Errorf("ActionPlan.Testing = %q", report.ActionPlan.Testing)
	}

	if len(report.InteractionAlerts) != 1 || report.InteractionAlerts[0] != "High glucose may affect creatinine interpretation." {
		t.Errorf("InteractionAlerts = %v", report.InteractionAlerts)
	}
}

func TestReport_EmptyInput(t *testing.T) {
	report := Report("")

	if len(report.NormalRanges) != 0 {
		t.Errorf("NormalRanges = %v, want empty", report.NormalRanges)
	}
	if len(report.BiomarkerTable) != 0 {
		t.Errorf("BiomarkerTable = %v, want empty", report.BiomarkerTable)
	}
	if len(report.ExecutiveSummary.TopPriorities) != 0 || len(report.ExecutiveSummary.KeyStrengths) != 0 {
		t.Errorf("ExecutiveSummary = %+v, want empty", report.ExecutiveSummary)
	}
	if report.SystemAnalysis.Status != "Unknown" || report.SystemAnalysis.Explanation != "No system analysis provided." {
		t.Errorf("SystemAnalysis = %+v, want default", report.SystemAnalysis)
	}
	if report.ActionPlan != (domain.ActionPlan{}) {
		t.Errorf("ActionPlan = %+v, want zero", report.ActionPlan)
	}
	if len(report.InteractionAlerts) != 0 {
		t.Errorf("InteractionAlerts = %v, want empty", report.InteractionAlerts)
	}
}

// 不论输入多畸形，序列化结果都必须包含全部顶层键
func TestReport_AllKeysAlwaysPresent(t *testing.T) {
	inputs := []string{
		"",
		"completely unrelated text",
		"| Biomarker | Value |",
		"Executive Summary",
		"```\nNormal Ranges\n- Albumin: 4.5\n```",
		strings.Repeat("|", 100),
	}
	keys := []string{
		`"normal_ranges"`,
		`"biomarker_table"`,
		`"executive_summary"`,
		`"system_analysis"`,
		`"action_plan"`,
		`"interaction_alerts"`,
	}
	for _, in := range inputs {
		report := Report(in)
		data, err := json.Marshal(report)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		for _, key := range keys {
			if !strings.Contains(string(data), key) {
				t.Errorf("input %q: output missing key %s", in, key)
			}
		}
	}
}

func TestReport_TableRowCellCount(t *testing.T) {
	text := "| Biomarker | Value | Status | Insight |\n" +
		"| --- | --- | --- | --- |\n" +
		"| Albumin | 4.5 | Normal |\n" + // 3 cells: skipped
		"| Glucose | 160 | High | Elevated | extra |\n" + // 5 cells: skipped
		"| CRP | 2.5 | Normal | Within range |\n"

	report := Report(text)
	if len(report.BiomarkerTable) != 1 {
		t.Fatalf("len(BiomarkerTable) = %d, want 1", len(report.BiomarkerTable))
	}
	if report.BiomarkerTable[0].Biomarker != "CRP" {
		t.Errorf("BiomarkerTable[0].Biomarker = %q, want CRP", report.BiomarkerTable[0].Biomarker)
	}
}

func TestReport_NormalRangeLastWriteWins(t *testing.T) {
	text := "- Glucose: 70-99 mg/dL\n- Glucose: 70–110 mg/dL\n"
	report := Report(text)
	if got := report.NormalRanges["Glucose"]; got != "70–110 mg/dL" {
		t.Errorf("NormalRanges[Glucose] = %q, want last value", got)
	}
}

func TestReport_AlertsSkipBlankAndFenceLines(t *testing.T) {
	text := "Interaction Alerts\n- First alert\n\n```\nSecond alert without marker\n"
	report := Report(text)
	want := []string{"First alert", "Second alert without marker"}
	if len(report.InteractionAlerts) != len(want) {
		t.Fatalf("InteractionAlerts = %v, want %v", report.InteractionAlerts, want)
	}
	for i := range want {
		if report.InteractionAlerts[i] != want[i] {
			t.Errorf("InteractionAlerts[%d] = %q, want %q", i, report.InteractionAlerts[i], want[i])
		}
	}
}

func TestReport_MissingSystemAnalysisFallsBack(t *testing.T) {
	report := Report("Executive Summary\n1. Something\nSystem-Specific Analysis\nno structured lines here")
	if report.SystemAnalysis.Status != "Unknown" {
		t.Errorf("SystemAnalysis.Status = %q, want Unknown", report.SystemAnalysis.Status)
	}
}

func TestReport_CodeFencesStrippedBeforeScan(t *testing.T) {
	text := "```\n- Albumin: 3.5-5.0 g/dL\n```\n- Creatinine: 0.7-1.3 mg/dL\n"
	report := Report(text)
	if _, ok := report.NormalRanges["Albumin"]; ok {
		t.Error("fenced Albumin range should be ignored")
	}
	if _, ok := report.NormalRanges["Creatinine"]; !ok {
		t.Error("Creatinine range outside the fence should be kept")
	}
}
