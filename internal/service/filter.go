package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/cinesocial/internal/model"
)

// DefaultLimit 未指定 limit 时的每页条数
const DefaultLimit = 10

// FeedParams 列表接口的原始查询参数
type FeedParams struct {
	Limit string `form:"limit"`
	Page  string `form:"page"`
	Genre string `form:"genre"`
	Order string `form:"order"`
}

// FeedFilter 校验并规范化后的列表条件
type FeedFilter struct {
	Limit   int
	Page    int
	Offset  int
	GenreID string
	Desc    bool
}

// feedRule 校验规则；字段顺序即报错优先级
type feedRule struct {
	Genre string `validate:"omitempty,genre"`
	Limit int    `validate:"gt=0,lte=100"`
	Order string `validate:"oneof=ASC DESC"`
}

var ruleErrors = map[string]error{
	"Genre": ErrInvalidGenre,
	"Limit": ErrInvalidLimit,
	"Order": ErrInvalidOrder,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		_, ok := model.LookupGenre(fl.Field().String())
		return ok
	})
	return v
}

// ResolveFeedFilter 校验 limit/genre/order 并换算分页偏移。
// limit 缺省为 10；page 缺省、非数字或小于 1 时按 1 处理；order 缺省为 DESC。
func ResolveFeedFilter(p FeedParams) (FeedFilter, error) {
	rule := feedRule{
		Genre: strings.TrimSpace(p.Genre),
		Limit: DefaultLimit,
		Order: strings.ToUpper(strings.TrimSpace(p.Order)),
	}
	if rule.Order == "" {
		rule.Order = "DESC"
	}
	if s := strings.TrimSpace(p.Limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			// 非数字与越界同样由 gt=0 规则报 Invalid limit
			n = 0
		}
		rule.Limit = n
	}

	if err := validate.Struct(rule); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if mapped, ok := ruleErrors[verrs[0].Field()]; ok {
				return FeedFilter{}, mapped
			}
		}
		return FeedFilter{}, err
	}

	page, err := strconv.Atoi(strings.TrimSpace(p.Page))
	if err != nil || page < 1 {
		page = 1
	}
	// 超大页码截断到 (page-1)*limit 不溢出的范围，结果仍为空页
	if maxPage := math.MaxInt / rule.Limit; page-1 > maxPage {
		page = maxPage
	}

	f := FeedFilter{
		Limit:  rule.Limit,
		Page:   page,
		Offset: (page - 1) * rule.Limit,
		Desc:   rule.Order == "DESC",
	}
	if rule.Genre != "" {
		g, _ := model.LookupGenre(rule.Genre)
		f.GenreID = g.ID
	}
	return f, nil
}

// ResolveOrder 只校验 order，用于不分页的列表
func ResolveOrder(order string) (bool, error) {
	f, err := ResolveFeedFilter(FeedParams{Order: order})
	if err != nil {
		return false, err
	}
	return f.Desc, nil
}

// ResolveGenre 将类型 ID 或名称规范化为 TMDB 类型 ID
func ResolveGenre(genre string) (string, error) {
	g, ok := model.LookupGenre(genre)
	if !ok {
		return "", ErrInvalidGenre
	}
	return g.ID, nil
}
