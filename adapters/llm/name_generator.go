package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"qiming/domain/name"
	"qiming/internal/errors"
	"qiming/internal/logging"
	"qiming/ports"
)

// namingSystemPrompt establishes the assistant's role and demands JSON.
const namingSystemPrompt = `你是一位经验丰富的起名大师，精通：
1. 中国传统文化、诗词典故
2. 五行八字理论
3. 汉字音韵、字形美学
4. 现代审美和流行趋势

你的任务是为宝宝推荐优质的名字，每个名字都要：
- 寓意美好、积极向上
- 音韵和谐、朗朗上口
- 字形优美、易读易写
- 符合用户的偏好要求

请以 JSON 格式返回结果。`

// NameGenerator implements ports.NameGenerator by prompting a chat LLM.
type NameGenerator struct {
	client ports.LLMClient
	logger *logging.Logger
}

func NewNameGenerator(client ports.LLMClient, logger *logging.Logger) *NameGenerator {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &NameGenerator{client: client, logger: logger}
}

func (g *NameGenerator) Source() name.Source { return name.SourceAI }

// aiNameResult mirrors the JSON contract with the model.
type aiNameResult struct {
	FirstName  string   `json:"firstName"`
	FullName   string   `json:"fullName"`
	Meaning    string   `json:"meaning"`
	Source     string   `json:"source"`
	Confidence int      `json:"confidence"`
	Tags       []string `json:"tags"`
}

// Generate issues a single request. Any transport or parse failure
// surfaces as one LLM error; there is no retry here.
func (g *NameGenerator) Generate(ctx context.Context, params ports.GenerateParams) ([]name.Candidate, error) {
	prompt := buildNamingPrompt(params.Input, params.Count)
	content, err := g.client.ChatCompletion(ctx, []ports.ChatMessage{
		{Role: "system", Content: namingSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, errors.LLMError("AI 生成名字失败", err)
	}

	var result struct {
		Names []aiNameResult `json:"names"`
	}
	if err := json.Unmarshal([]byte(cleanJSONContent(content)), &result); err != nil {
		g.logger.Warn("unparseable LLM naming response: %v", err)
		return nil, errors.LLMError("AI 返回格式无效", err)
	}

	cands := make([]name.Candidate, 0, len(result.Names))
	for _, n := range result.Names {
		if n.FirstName == "" {
			continue
		}
		fullName := n.FullName
		if fullName == "" {
			fullName = params.Input.Surname + n.FirstName
		}
		cands = append(cands, name.Candidate{
			FullName:  fullName,
			FirstName: n.FirstName,
			Source:    name.SourceAI,
			SourceDetail: fmt.Sprintf("%s\n\n来源：%s\n\n标签：%s",
				n.Meaning, n.Source, strings.Join(n.Tags, "、")),
		})
	}
	return cands, nil
}

// buildNamingPrompt renders the user message: surname, gender term,
// preferences, per-source instructions, count, and the fixed-character
// constraint when present.
func buildNamingPrompt(input name.Input, count int) string {
	genderText := ""
	switch input.Gender {
	case name.GenderMale:
		genderText = "男"
	case name.GenderFemale:
		genderText = "女"
	}
	if count <= 0 {
		count = 10
	}

	selected := make(map[name.Source]bool)
	for _, s := range input.Sources {
		selected[s] = true
	}
	var sourceInstructions strings.Builder
	if selected[name.SourcePoetry] {
		sourceInstructions.WriteString("\n- 从唐诗宋词、诗经楚辞等古典诗词中提取优美的字词")
	}
	if selected[name.SourceWuxing] {
		sourceInstructions.WriteString("\n- 考虑五行平衡，选择五行属性合适的字")
	}
	if selected[name.SourceAI] {
		sourceInstructions.WriteString("\n- 发挥创意，结合现代审美设计新颖的名字")
	}
	if selected[name.SourceCustom] {
		sourceInstructions.WriteString("\n- 综合多种来源，推荐最优质的名字")
	}

	fixedCharInstructions := ""
	if fc := input.FixedChar; fc != nil {
		position := "第一个字"
		if fc.Position == name.PositionSecond {
			position = "第二个字"
		}
		fixedCharInstructions = fmt.Sprintf("\n\n⚠️ 固定字要求：名字的%s必须是\"%s\"，请只生成另一个字来搭配。", position, fc.Char)
	}

	return fmt.Sprintf(`请为姓"%s"的%s宝宝推荐%d个名字。

用户偏好：%s

名字来源要求：%s%s

请返回 JSON 格式：
{
  "names": [
    {
      "firstName": "诗涵",
      "fullName": "%s诗涵",
      "meaning": "诗意涵养，温文尔雅，寓意孩子富有文学气质和内在修养",
      "source": "取自诗词'腹有诗书气自华'，涵字体现涵养",
      "confidence": 95,
      "tags": ["诗意", "文雅", "内涵"]
    }
  ]
}

要求：
1. 每个名字必须提供详细的寓意解释
2. 如果来源诗词，请注明具体诗句和作者
3. confidence 表示推荐度 (0-100)
4. tags 标签要准确反映名字特点
5. 名字要符合中国人起名习惯，避免生僻字
6. 注意音韵和谐，避免谐音不雅`,
		input.Surname, genderText, count,
		strings.Join(input.Preferences, "、"),
		sourceInstructions.String(), fixedCharInstructions,
		input.Surname)
}

// cleanJSONContent strips a markdown code fence some models wrap around
// their JSON.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```JSON")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}

var _ ports.NameGenerator = (*NameGenerator)(nil)
