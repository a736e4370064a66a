package util

import (
	"fmt"
	"time"

	"booklet-show/biz/infrastructure/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const presignExpire = 15 * time.Minute

// PresignAsset 为题目图片生成预签名的上传/下载链接
func PresignAsset(key string) (putURL string, getURL string, err error) {
	cfg := config.GetConfig()
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Asset.Region),
	})
	if err != nil {
		return "", "", fmt.Errorf("创建会话失败: %w", err)
	}
	svc := s3.New(sess)

	putReq, _ := svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket: aws.String(cfg.Asset.Bucket),
		Key:    aws.String(key),
	})
	putURL, err = putReq.Presign(presignExpire)
	if err != nil {
		return "", "", fmt.Errorf("签名上传链接失败: %w", err)
	}

	getReq, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(cfg.Asset.Bucket),
		Key:    aws.String(key),
	})
	getURL, err = getReq.Presign(presignExpire)
	if err != nil {
		return "", "", fmt.Errorf("签名下载链接失败: %w", err)
	}
	return putURL, getURL, nil
}
