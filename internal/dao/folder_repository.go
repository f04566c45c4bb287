package dao

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
)

// 目录树遍历的防环上限，超过视为数据异常直接截断
const maxFolderTreeDepth = 64

// folderRepository 实现 domain.FolderRepository 接口
type folderRepository struct {
	dao *Dao
}

// NewFolderRepository 创建 FolderRepository 实例
func NewFolderRepository(dao *Dao) domain.FolderRepository {
	return &folderRepository{dao: dao}
}

func (r *folderRepository) toDomain(m *model.Folder) *domain.Folder {
	if m == nil {
		return nil
	}
	return &domain.Folder{
		ID:        m.ID,
		EventID:   m.EventID,
		ParentID:  m.ParentID,
		Name:      m.Name,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *folderRepository) GetByID(ctx context.Context, id int64, eventID int64) (*domain.Folder, error) {
	var m model.Folder
	err := r.dao.use(ctx, "Folder").
		Where("id = ? AND event_id = ?", id, eventID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *folderRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Folder, error) {
	var m model.Folder
	err := r.dao.use(ctx, "Folder").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *folderRepository) ListChildIDs(ctx context.Context, parentID int64, eventID int64) ([]int64, error) {
	var ids []int64
	err := r.dao.use(ctx, "Folder").Model(&model.Folder{}).
		Where("parent_id = ? AND event_id = ?", parentID, eventID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListDescendantIDs 逐层 BFS 展开目录树，每层一条 IN 查询。
// 返回值含 rootID 自身；seen 集合防止脏数据造成的环。
func (r *folderRepository) ListDescendantIDs(ctx context.Context, rootID int64, eventID int64) ([]int64, error) {
	result := []int64{rootID}
	seen := map[int64]bool{rootID: true}
	frontier := []int64{rootID}

	for depth := 0; len(frontier) > 0 && depth < maxFolderTreeDepth; depth++ {
		var next []int64
		err := r.dao.use(ctx, "Folder").Model(&model.Folder{}).
			Where("parent_id IN ? AND event_id = ?", frontier, eventID).
			Pluck("id", &next).Error
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, id := range next {
			if seen[id] {
				continue
			}
			seen[id] = true
			result = append(result, id)
			frontier = append(frontier, id)
		}
	}
	return result, nil
}

var _ domain.FolderRepository = (*folderRepository)(nil)
