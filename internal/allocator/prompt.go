package allocator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saulo-duarte/coach-lambda/internal/extract"
)

const noDescription = "なし"

const taskGeneratorRules = `
あなたはタスク設計のアシスタントです。ユーザーの目標と使える時間から、その日に実行するタスクを作ります。

ルール:
1. タスクは具体的で、その日のうちに終えられる大きさにする。
2. 各タスクには goalId、title、description、estimatedTime（分、正の整数）を必ず含める。
3. goalId は与えられた目標の ID をそのまま使う。
4. 合計の estimatedTime が利用可能な時間を超えないようにする。
5. 時間配分の重みが大きい目標ほど多くの時間を割り当てる。

出力形式（短い説明のあとに必ずこのブロックを1つだけ出力する）:

`

// TaskGeneratorSystemPrompt fixes the reply format the extractor expects.
var TaskGeneratorSystemPrompt = taskGeneratorRules + extract.MustFence(extract.KeyTasks, []extract.GeneratedTask{{
	GoalID:        "<目標ID>",
	Title:         "<タスク名>",
	Description:   "<やること>",
	EstimatedTime: 30,
}}) + "\n"

// BuildPrompt writes the instruction for one day. goals must already be the
// active goals; callers check for an empty list first.
func BuildPrompt(budget Budget, goals []Goal) string {
	var b strings.Builder

	dayKind := "平日"
	if budget.IsWeekend {
		dayKind = "休日"
	}
	minutes := formatNumber(budget.Minutes)

	fmt.Fprintf(&b, "以下の条件で、%s（%s）のタスクを生成してください。\n\n", budget.Date.Format("2006/1/2"), dayKind)

	b.WriteString("## 利用可能な時間\n")
	fmt.Fprintf(&b, "%s時間（%s分）\n\n", formatNumber(budget.Hours), minutes)

	b.WriteString("## 目標一覧\n")
	shares := Shares(budget, goals)
	for i, g := range goals {
		description := strings.TrimSpace(g.Description)
		if description == "" {
			description = noDescription
		}
		fmt.Fprintf(&b, "%d. 【ID: %s】%s\n", i+1, g.ID, g.Title)
		fmt.Fprintf(&b, "   - 説明: %s\n", description)
		fmt.Fprintf(&b, "   - 優先度: %s\n", g.Priority)
		fmt.Fprintf(&b, "   - 時間配分の重み: %d/%d\n", g.Weight(), MaxWeight)
		fmt.Fprintf(&b, "   - 目安の配分: 約%d分\n", shares[i].Minutes)
	}

	b.WriteString("\n## 要件\n")
	b.WriteString("- 各目標の時間配分の重みに応じてタスクを配分してください\n")
	fmt.Fprintf(&b, "- 合計所要時間が利用可能な時間（%s分）を超えないようにしてください\n", minutes)
	b.WriteString("- 各タスクには必ずgoalId、title、description、estimatedTimeを含めてください\n")
	b.WriteString("- タスクは具体的で実行可能な内容にしてください\n")

	return b.String()
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
