package service

import (
	"context"

	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/util"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/google/wire"
)

type IAssetService interface {
	GetUploadUrl(ctx context.Context, req *show.GetUploadUrlReq) (*show.GetUploadUrlResp, error)
}

// AssetService 题目图片走对象存储直传 服务端只发预签名链接
type AssetService struct {
}

var AssetServiceSet = wire.NewSet(
	wire.Struct(new(AssetService), "*"),
	wire.Bind(new(IAssetService), new(*AssetService)),
)

func (s *AssetService) GetUploadUrl(ctx context.Context, req *show.GetUploadUrlReq) (*show.GetUploadUrlResp, error) {
	putURL, getURL, err := util.PresignAsset(req.Key)
	if err != nil {
		log.CtxError(ctx, "presign asset fail, key=%s err=%v", req.Key, err)
		return nil, consts.ErrPresign
	}
	return &show.GetUploadUrlResp{PutUrl: putURL, GetUrl: getURL}, nil
}
