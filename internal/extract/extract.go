// Package extract 将模型返回的 markdown 健康报告转换为结构化数据。
//
// 模型输出是半结构化的自然语言文本，这里对已知的段落标题与列表格式做
// 逐段正则扫描。任何一段缺失或格式不符都只会让对应字段保持默认值，
// 整个转换过程对任意输入都不会失败。
package extract

import (
	"regexp"
	"strings"

	"github.com/biolens-ai/bioradar/internal/domain"
)

var (
	codeFenceRe = regexp.MustCompile("(?s)```.*?```")

	// "- Glucose: 70–99 mg/dL" 形式的参考范围行
	normalRangeRe = regexp.MustCompile(`- ([A-Za-z ]+): ([0-9.\-–]+.*)`)

	// 以 "| Biomarker | Value |" 开头的 markdown 管道表格
	tableRe = regexp.MustCompile(`(?s)\| Biomarker \| Value \|.*?\|\n((?:\|.*\|\n?)+)`)

	execSectionRe = regexp.MustCompile(`(?s)Executive Summary\n(.*?)\nSystem-Specific Analysis`)
	priorityRe    = regexp.MustCompile(`\d+\.\s+(.*)`)
	strengthRe    = regexp.MustCompile(`- (.*(?:Normal|within|good|optimal).*?)\n`)

	systemRe = regexp.MustCompile(`(?s)System-Specific Analysis\n- Status: (.*?)\n- Explanation: (.*?)(?:\n|$)`)

	actionSectionRe = regexp.MustCompile(`(?s)Personalized Action Plan\n(.*?)\nInteraction Alerts`)
	actionItemRe    = regexp.MustCompile(`- (\w+): (.*)`)

	alertSectionRe = regexp.MustCompile(`(?s)Interaction Alerts\n(.*)`)
)

// Report 从 markdown 文本中抽取结构化报告。对所有输入都是全函数：
// 未匹配到的段落退化为字段默认值，绝不返回错误。
func Report(text string) *domain.BiomarkerReport {
	report := domain.NewBiomarkerReport()

	// 代码块里的内容一律视为噪音
	text = codeFenceRe.ReplaceAllString(text, "")

	parseNormalRanges(text, report)
	parseBiomarkerTable(text, report)
	parseExecutiveSummary(text, report)
	parseSystemAnalysis(text, report)
	parseActionPlan(text, report)
	parseInteractionAlerts(text, report)

	return report
}

func parseNormalRanges(text string, report *domain.BiomarkerReport) {
	// 同名指标后写覆盖先写
	for _, m := range normalRangeRe.FindAllStringSubmatch(text, -1) {
		report.NormalRanges[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
	}
}

func parseBiomarkerTable(text string, report *domain.BiomarkerReport) {
	m := tableRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	for _, row := range strings.Split(strings.TrimSpace(m[1]), "\n") {
		row = strings.Trim(strings.TrimSpace(row), "|")
		cells := strings.Split(row, "|")
		if len(cells) != 4 {
			continue
		}
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if isSeparatorCell(cells[0]) {
			continue
		}
		report.BiomarkerTable = append(report.BiomarkerTable, domain.BiomarkerRow{
			Biomarker: cells[0],
			Value:     cells[1],
			Status:    cells[2],
			Insight:   cells[3],
		})
	}
}

// isSeparatorCell 判断单元格是否属于表头分隔行（仅由 '-' 组成）
func isSeparatorCell(cell string) bool {
	if cell == "" {
		return false
	}
	for _, r := range cell {
		if r != '-' {
			return false
		}
	}
	return true
}

func parseExecutiveSummary(text string, report *domain.BiomarkerReport) {
	m := execSectionRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	// 末行补一个换行，保证最后一条 bullet 也能被行级正则命中
	section := m[1] + "\n"

	for _, p := range priorityRe.FindAllStringSubmatch(section, -1) {
		report.ExecutiveSummary.TopPriorities = append(report.ExecutiveSummary.TopPriorities, strings.TrimSpace(p[1]))
	}
	for _, s := range strengthRe.FindAllStringSubmatch(section, -1) {
		report.ExecutiveSummary.KeyStrengths = append(report.ExecutiveSummary.KeyStrengths, strings.TrimSpace(s[1]))
	}
}

func parseSystemAnalysis(text string, report *domain.BiomarkerReport) {
	m := systemRe.FindStringSubmatch(text)
	if m == nil {
		// 保持 NewBiomarkerReport 给出的 Unknown 默认值
		return
	}
	report.SystemAnalysis.Status = strings.TrimSpace(m[1])
	report.SystemAnalysis.Explanation = strings.TrimSpace(m[2])
}

func parseActionPlan(text string, report *domain.BiomarkerReport) {
	m := actionSectionRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	for _, item := range actionItemRe.FindAllStringSubmatch(m[1], -1) {
		content := strings.TrimSpace(item[2])
		switch strings.ToLower(item[1]) {
		case "nutrition":
			report.ActionPlan.Nutrition = content
		case "lifestyle":
			report.ActionPlan.Lifestyle = content
		case "medical":
			report.ActionPlan.Medical = content
		case "testing":
			report.ActionPlan.Testing = content
		}
		// 其余类别忽略
	}
}

func parseInteractionAlerts(text string, report *domain.BiomarkerReport) {
	m := alertSectionRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if line != "" {
			report.InteractionAlerts = append(report.InteractionAlerts, line)
		}
	}
}
