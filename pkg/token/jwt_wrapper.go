package token

// 測試時可覆蓋
var (
	GenerateJWTFunc = GenerateJWT
	ParseJWTFunc    = ParseJWT
)

// Issuer JWT issuer
const Issuer = "qsite"

// GenerateJWTWrapper 讓 memberUseCase test mock 使用這個包裝函數
func GenerateJWTWrapper(memberID, role string) (string, error) {
	return GenerateJWTFunc(memberID, role, Issuer)
}

// ParseJWTWrapper 讓 middleware / memberUseCase test mock 使用這個包裝函數
func ParseJWTWrapper(t string) (*Claims, error) {
	return ParseJWTFunc(t)
}
