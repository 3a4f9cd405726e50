// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"

	authdto "la_patisserie/internal/api/auth/dto"
	models "la_patisserie/internal/api/auth/models"
	basesvc "la_patisserie/internal/api/base/service"
	"la_patisserie/internal/common"
	"la_patisserie/internal/global"
	"la_patisserie/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// LoginWithFirebase đăng nhập bằng Firebase ID token.
// Nếu user chưa tồn tại sẽ được tạo mới (provision) từ thông tin Firebase
func (s *UserService) LoginWithFirebase(ctx context.Context, input *authdto.FirebaseLoginInput) (*models.User, error) {
	token, err := utility.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		logrus.WithError(err).Error("LoginWithFirebase: Lỗi verify Firebase ID token")
		return nil, common.NewError(common.ErrCodeAuthCredentials, "Token không hợp lệ", common.StatusUnauthorized, err)
	}

	firebaseUser, err := utility.GetUserByUID(ctx, token.UID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"firebase_uid": token.UID,
			"error":        err.Error(),
		}).Error("LoginWithFirebase: Lỗi lấy thông tin user từ Firebase")
		return nil, err
	}

	// Kiểm tra conflict: email đã gắn với Firebase UID khác
	if firebaseUser.Email != "" {
		emailUser, emailErr := s.FindOne(ctx, bson.M{"email": firebaseUser.Email}, nil)
		if emailErr == nil && emailUser.FirebaseUID != "" && emailUser.FirebaseUID != token.UID {
			logrus.WithFields(logrus.Fields{
				"existing_firebase_uid": emailUser.FirebaseUID,
				"new_firebase_uid":      token.UID,
			}).Warn("LoginWithFirebase: Email đã được sử dụng bởi tài khoản khác")
			return nil, common.NewError(
				common.ErrCodeAuthCredentials,
				fmt.Sprintf("Email '%s' đã được sử dụng bởi tài khoản khác", firebaseUser.Email),
				common.StatusConflict,
				nil,
			)
		}
		if emailErr != nil && !errors.Is(emailErr, common.ErrNotFound) {
			return nil, emailErr
		}
	}

	updateData := &basesvc.UpdateData{Set: map[string]interface{}{
		"firebaseUid":   token.UID,
		"emailVerified": firebaseUser.EmailVerified,
		"phoneVerified": firebaseUser.PhoneNumber != "",
		"isBlock":       false,
	}}
	if firebaseUser.DisplayName != "" {
		updateData.Set["name"] = firebaseUser.DisplayName
	}
	if firebaseUser.PhotoURL != "" {
		updateData.Set["avatarUrl"] = firebaseUser.PhotoURL
	}
	if firebaseUser.Email != "" {
		updateData.Set["email"] = firebaseUser.Email
	}
	if firebaseUser.PhoneNumber != "" {
		updateData.Set["phone"] = firebaseUser.PhoneNumber
	}

	user, err := s.Upsert(ctx, bson.M{"firebaseUid": token.UID}, updateData)
	if err != nil {
		logrus.WithError(err).Error("LoginWithFirebase: Lỗi upsert user")
		return nil, err
	}

	if user.IsBlock {
		return nil, common.NewError(common.ErrCodeAuthRole, "Tài khoản đã bị khóa: "+user.BlockNote, common.StatusForbidden, nil)
	}

	return &user, nil
}

// GetByFirebaseUID tìm user theo Firebase UID
func (s *UserService) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.FindOne(ctx, bson.M{"firebaseUid": uid}, nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile cập nhật profile của chính user
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input *authdto.UserUpdateProfileInput) (*models.User, error) {
	updateData := &basesvc.UpdateData{Set: map[string]interface{}{}}
	if input.Name != "" {
		updateData.Set["name"] = input.Name
	}
	if input.AvatarURL != "" {
		updateData.Set["avatarUrl"] = input.AvatarURL
	}
	if len(updateData.Set) == 0 {
		return nil, common.ErrRequiredField
	}

	user, err := s.UpdateById(ctx, userID, updateData)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ToUserResponse chuyển model User sang DTO trả về cho client
func ToUserResponse(u *models.User) *authdto.UserResponse {
	return &authdto.UserResponse{
		ID:            u.ID.Hex(),
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		AvatarURL:     u.AvatarURL,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		CreatedAt:     u.CreatedAt,
	}
}
