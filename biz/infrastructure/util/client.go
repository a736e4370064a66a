package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"booklet-show/biz/infrastructure/config"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var client *HttpClient

// HttpClient 是一个简单的 HTTP 客户端
// 批改/解题服务均为黑盒异步接口 调用失败由上层落回占位结果
type HttpClient struct {
	Client *http.Client
}

// NewHttpClient 创建一个新的 HttpClient 实例
func NewHttpClient() *HttpClient {
	return &HttpClient{
		Client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func GetHttpClient() *HttpClient {
	if client == nil {
		client = NewHttpClient()
	}
	return client
}

// SendRequest 发送 HTTP 请求
func (c *HttpClient) SendRequest(ctx context.Context, method, url string, headers map[string]string, body interface{}) (map[string]interface{}, error) {
	// 将 body 序列化为 JSON
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("请求体序列化失败: %w", err)
	}

	// 创建新的请求
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	// 设置请求头
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// 发送请求
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error("关闭请求失败: %v", closeErr)
		}
	}()

	// 读取响应
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 检查响应状态码
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, responseBody)
	}

	// 反序列化响应体
	var responseMap map[string]interface{}
	if err := json.Unmarshal(responseBody, &responseMap); err != nil {
		return nil, fmt.Errorf("反序列化响应失败: %w", err)
	}

	return responseMap, nil
}

// MarkResult 批改结果
type MarkResult struct {
	Score    int64  `mapstructure:"score"`
	Feedback string `mapstructure:"feedback"`
}

// SolveResult 解题结果
type SolveResult struct {
	QuestionText string `mapstructure:"questionText"`
	Solution     string `mapstructure:"solution"`
	Marks        int64  `mapstructure:"marks"`
}

// Mark 调用批改服务对单题作答评分
func (c *HttpClient) Mark(ctx context.Context, questionText, referenceSolution, studentResponse string, maxMarks int64, image *string) (*MarkResult, error) {
	body := make(map[string]interface{})
	body["questionText"] = questionText
	body["referenceSolution"] = referenceSolution
	body["studentResponse"] = studentResponse
	body["maxMarks"] = maxMarks
	if image != nil {
		body["image"] = *image
	}

	header := make(map[string]string)
	header["Content-Type"] = consts.ContentTypeJson
	header["Charset"] = consts.CharSetUTF8

	// 如果是测试环境则向测试环境发送请求
	if config.GetConfig().State == "test" {
		header["X-Env"] = "test"
	}

	resp, err := c.SendRequest(ctx, consts.Post, config.GetConfig().Api.MarkURL, header, body)
	if err != nil {
		return nil, err
	}

	result := new(MarkResult)
	if dataMap, ok := resp["data"].(map[string]any); ok {
		if err := mapstructure.Decode(dataMap, result); err != nil {
			return nil, consts.ErrCall
		}
	} else {
		// 部分部署直接返回平铺结构
		result.Score = cast.ToInt64(resp["score"])
		result.Feedback = cast.ToString(resp["feedback"])
	}
	if result.Score > maxMarks {
		result.Score = maxMarks
	}
	return result, nil
}

// Solve 调用解题服务从题目图片提取题干并生成解答
func (c *HttpClient) Solve(ctx context.Context, images []string, questionNumber int64) (*SolveResult, error) {
	body := make(map[string]interface{})
	body["images"] = images
	body["questionNumber"] = questionNumber

	header := make(map[string]string)
	header["Content-Type"] = consts.ContentTypeJson
	header["Charset"] = consts.CharSetUTF8

	if config.GetConfig().State == "test" {
		header["X-Env"] = "test"
	}

	resp, err := c.SendRequest(ctx, consts.Post, config.GetConfig().Api.SolveURL, header, body)
	if err != nil {
		return nil, err
	}

	result := new(SolveResult)
	if dataMap, ok := resp["data"].(map[string]any); ok {
		if err := mapstructure.Decode(dataMap, result); err != nil {
			return nil, consts.ErrCall
		}
	} else {
		result.QuestionText = cast.ToString(resp["questionText"])
		result.Solution = cast.ToString(resp["solution"])
		result.Marks = cast.ToInt64(resp["marks"])
	}
	return result, nil
}
