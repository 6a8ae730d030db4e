package gateway

import (
	"fmt"
	"strings"

	"tableflip.dev/weiwei/pkg/entry"
)

const unrecordedFood = "未记录"

func analysisPrompt(food string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请分析用户输入的食物：“%s”。\n\n", food)
	b.WriteString("请按以下规则给出一顿饭的推荐份量：\n")
	b.WriteString("1. 识别与拆分：只输入一个菜名时视为一道菜；输入了多道菜时分别列出。\n")
	b.WriteString("2. 详细拆解：每道菜都必须写出主要食材及各自的推荐克重，不能只给总重量。\n")
	b.WriteString("3. 营养补全：如果输入只有主食或只有肉类等营养不均衡的情况，请自动补充蔬菜、优质蛋白等互补菜品，组成一顿均衡的简餐。\n")
	b.WriteString("4. 饮食建议（advice）：一句话，语气温暖、像朋友一样；如果补充了菜品，必须说明补充的原因。\n")
	b.WriteString("5. 充盈度（stomachLoadPercentage）：估算吃完推荐份量后胃部的充盈程度，0-100，吃太多可以超过100。\n\n")
	b.WriteString("注意：建议中不要出现任何卡路里数字，重点是种类均衡和食材细节。")
	return b.String()
}

func reportPrompt(entries []entry.Entry) string {
	var b strings.Builder
	b.WriteString("基于以下用户的饮食日记，生成一份周报总结。\n\n日记数据：\n")
	b.WriteString(serializeEntries(entries))
	b.WriteString("\n\n要求：\n")
	b.WriteString("1. 角色：你是一位温柔、专业的心理咨询师。\n")
	b.WriteString("2. 极度精简，不要铺垫和废话，直接说重点。\n")
	b.WriteString("3. 分析食物与身体感受之间的关系时，必须点名具体的食物。\n")
	b.WriteString("4. 只给一条建议，不超过30个字。\n")
	b.WriteString("5. 不要给感受加英文或括号翻译，例如只写“撑到了”。\n")
	b.WriteString("6. 全文只能用一个表情符号，并且放在最末尾。\n\n")
	b.WriteString("输出结构：\n本周回顾：[简短概括]\n我的发现：[食物与感受的规律]\n小建议：[30字以内的建议]")
	return b.String()
}

// serializeEntries renders one "date, food, feeling" line per entry.
func serializeEntries(entries []entry.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("日期: %s, 食物: %s, 感受: %s", e.Date, e.Food(unrecordedFood), e.Feeling))
	}
	return strings.Join(lines, "\n")
}
