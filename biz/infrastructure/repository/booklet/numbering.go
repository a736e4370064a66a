package booklet

import (
	"sort"
	"time"

	"booklet-show/biz/infrastructure/consts"

	"github.com/samber/lo"
)

// 册内按话题编号
// 已编号的题目永远不动 作业引用的题号区间才能在增删后保持稳定
// 删除留下的空洞不回填 number是稳定的稀疏标识而非计数

// topicOf 空话题落入默认桶
func topicOf(q *Question) string {
	if q.Topic == "" {
		return consts.DefaultTopic
	}
	return q.Topic
}

// Renumber 为缺号题目补齐话题内连续编号并刷新UpdatedAt
// 同一话题内按创建时间升序 从已有最大号之后顺延
func Renumber(b *Booklet) {
	if b.Questions == nil {
		b.Questions = []*Question{}
	}
	groups := lo.GroupBy(b.Questions, topicOf)
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt < group[j].CreatedAt
		})
		next := existingMax(group) + 1
		for _, q := range group {
			if q.Number <= 0 {
				q.Number = next
				next++
			}
		}
	}
	b.UpdatedAt = time.Now().UnixMilli()
}

// NextNumber 话题内下一个可用编号
func NextNumber(b *Booklet, topic string) int64 {
	if topic == "" {
		topic = consts.DefaultTopic
	}
	group := lo.Filter(b.Questions, func(q *Question, _ int) bool {
		return topicOf(q) == topic
	})
	return existingMax(group) + 1
}

// AppendQuestions 向单一话题批量追加题目
// 只扫一次已有最大号 按传入顺序顺延 避免逐条插入后反复重扫
func AppendQuestions(b *Booklet, topic string, qs []*Question) {
	next := NextNumber(b, topic)
	for _, q := range qs {
		q.Topic = topic
		q.Number = next
		next++
		b.Questions = append(b.Questions, q)
	}
	b.UpdatedAt = time.Now().UnixMilli()
}

// existingMax 已分配的最大正编号 未设置/非正数忽略
func existingMax(group []*Question) int64 {
	var max int64
	for _, q := range group {
		if q.Number > max {
			max = q.Number
		}
	}
	return max
}
