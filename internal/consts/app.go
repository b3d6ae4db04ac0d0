package consts

const (
	ApplicationName    = "MOMNT Server"
	ApplicationVersion = "v1.0.0"
)
