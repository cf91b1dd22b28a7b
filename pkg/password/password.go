package password

import (
	"strings"

	apperrors "mtsp/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher 密码哈希器 - bcrypt加盐单向哈希，工作因子可配置
type Hasher struct {
	cost int
}

// NewHasher 创建密码哈希器，cost超出bcrypt允许范围时使用默认值
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash 生成密码摘要，每次调用使用随机盐，相同明文产生不同摘要
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify 校验明文与摘要是否匹配，不匹配返回false而不是错误
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// CheckDigest 检查摘要格式是否为合法的bcrypt输出
func (h *Hasher) CheckDigest(digest string) error {
	if !strings.HasPrefix(digest, "$2") {
		return apperrors.ErrHashFormat
	}
	if _, err := bcrypt.Cost([]byte(digest)); err != nil {
		return apperrors.ErrHashFormat
	}
	return nil
}
