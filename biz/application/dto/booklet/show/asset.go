package show

type GetUploadUrlReq struct {
	Key string `json:"key" form:"key" query:"key" vd:"len($)>0"`
}

type GetUploadUrlResp struct {
	PutUrl string `json:"putUrl"`
	GetUrl string `json:"getUrl"`
}
