// Package format renders query results as user-facing text.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Niloux/cookbook-mcp/pkg/types"
)

// Formatter renders recipes, search results, and category listings in a
// consistent voice.
type Formatter struct {
	siteURL            string
	maxCategoryDisplay int
}

// New creates a Formatter. siteURL is used to expand recipe links.
func New(siteURL string, maxCategoryDisplay int) *Formatter {
	return &Formatter{
		siteURL:            siteURL,
		maxCategoryDisplay: maxCategoryDisplay,
	}
}

// SearchResult renders a keyword search outcome.
func (f *Formatter) SearchResult(res types.SearchResult) string {
	if res.IsEmpty() {
		return fmt.Sprintf("🔍 没有找到包含 '%s' 的菜品", res.Query)
	}

	var b strings.Builder
	if res.HasMore {
		fmt.Fprintf(&b, "🔍 搜索 '%s' 的结果（显示前%d个，共%d个）：\n", res.Query, res.ShownCount(), res.TotalCount)
	} else {
		fmt.Fprintf(&b, "🔍 搜索 '%s' 的结果（共%d个）：\n", res.Query, res.TotalCount)
	}
	for i, r := range res.Recipes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s (%s)", r.Name, r.CategoryLabel)
	}
	if res.HasMore {
		fmt.Fprintf(&b, "\n\n... 还有 %d 个结果", res.TotalCount-res.ShownCount())
	}
	return b.String()
}

// RandomRecipe renders a single recommendation. A non-empty category means
// the pick was scoped to it.
func (f *Formatter) RandomRecipe(r types.Recipe, category string) string {
	if category != "" {
		return fmt.Sprintf("🍽️ 推荐的%s: %s", category, r.Name)
	}
	return fmt.Sprintf("🍽️ 推荐菜品: %s (%s)", r.Name, r.CategoryLabel)
}

// RandomBatch renders a multi-recipe recommendation.
func (f *Formatter) RandomBatch(recipes []types.Recipe) string {
	if len(recipes) == 0 {
		return f.NoRecipes("")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎲 随机推荐 %d 道菜：", len(recipes))
	for _, r := range recipes {
		fmt.Fprintf(&b, "\n• %s (%s)", r.Name, r.CategoryLabel)
	}
	return b.String()
}

// NoRecipes renders the empty-pool message, scoped to category when given.
func (f *Formatter) NoRecipes(category string) string {
	if category != "" {
		return fmt.Sprintf("😔 分类 '%s' 下暂时没有菜品。", category)
	}
	return "😔 暂无可推荐的菜品"
}

// Categories renders the category listing with counts, largest first
// (ties break by label so output is stable).
func (f *Formatter) Categories(info map[string]int, total int) string {
	type categoryCount struct {
		label string
		count int
	}
	sorted := make([]categoryCount, 0, len(info))
	for label, count := range info {
		sorted = append(sorted, categoryCount{label, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].label < sorted[j].label
	})
	if len(sorted) > f.maxCategoryDisplay && f.maxCategoryDisplay > 0 {
		sorted = sorted[:f.maxCategoryDisplay]
	}

	var b strings.Builder
	b.WriteString("🍳 吃点啥 - 食谱助手\n")
	b.WriteString(strings.Repeat("=", 25) + "\n")
	b.WriteString("📊 分类及菜品数量:")
	for _, c := range sorted {
		fmt.Fprintf(&b, "\n  %s: %d 种菜品", c.label, c.count)
	}
	fmt.Fprintf(&b, "\n\n📈 总计: %d 种菜品", total)
	return b.String()
}

// CategoryRecipes renders the dishes of one category.
func (f *Formatter) CategoryRecipes(category string, recipes []types.Recipe) string {
	if len(recipes) == 0 {
		return f.NoRecipes(category)
	}

	total := len(recipes)
	shown := recipes
	if f.maxCategoryDisplay > 0 && total > f.maxCategoryDisplay {
		shown = recipes[:f.maxCategoryDisplay]
	}

	var b strings.Builder
	if len(shown) < total {
		fmt.Fprintf(&b, "🍽️ %s 分类下的菜品（显示前%d个，共%d个）：", category, len(shown), total)
	} else {
		fmt.Fprintf(&b, "🍽️ %s 分类下的菜品（共%d个）：", category, total)
	}
	for _, r := range shown {
		fmt.Fprintf(&b, "\n• %s", r.Name)
	}
	if len(shown) < total {
		fmt.Fprintf(&b, "\n\n... 还有 %d 个菜品", total-len(shown))
	}
	return b.String()
}

// RecipeURL renders the how-to-cook link for a recipe.
func (f *Formatter) RecipeURL(r types.Recipe) string {
	return fmt.Sprintf("📖 %s 的制作方式：\n%s", r.Name, r.FullURL(f.siteURL))
}

// RecipeNotFound renders the exact-lookup miss message.
func (f *Formatter) RecipeNotFound(name string) string {
	return fmt.Sprintf("❌ 未找到菜品: %s\n💡 建议使用 search_recipes 查看可用菜品", name)
}

// InvalidCategory renders the unknown-category message with alternatives.
func (f *Formatter) InvalidCategory(category string, valid []string) string {
	sorted := make([]string, len(valid))
	copy(sorted, valid)
	sort.Strings(sorted)
	return fmt.Sprintf("❌ 未知分类: %s\n🏷️ 可用分类: %s", category, strings.Join(sorted, ", "))
}

// ReloadSuccess renders the reload completion message.
func (f *Formatter) ReloadSuccess(total int) string {
	return fmt.Sprintf("✅ 数据重新加载完成，共 %d 个食谱", total)
}

// NotReady renders the service-not-ready message.
func (f *Formatter) NotReady() string {
	return "❌ 食谱数据未加载完成，请稍后再试"
}

// InvalidInput renders a parameter validation failure.
func (f *Formatter) InvalidInput(field, value, reason string) string {
	return fmt.Sprintf("❌ 参数验证失败: %s='%s' - %s", field, value, reason)
}

// Help renders the tool overview text.
func (f *Formatter) Help() string {
	return strings.Join([]string{
		"🍳 食谱助手",
		"",
		"🔍 search_recipes <关键词> - 按关键词搜索菜品",
		"🎲 random_recipe [分类] - 随机推荐一道菜",
		"🎲 random_recipes [数量] - 随机推荐多道菜",
		"📖 get_recipe <菜名> - 查看菜品制作方式",
		"🏷️ list_categories - 查看所有分类",
		"🍽️ list_category_recipes <分类> - 查看分类下的菜品",
		"💡 suggest_recipes <前缀> - 菜名补全建议",
		"🔄 reload_recipes - 重新加载食谱数据",
	}, "\n")
}
