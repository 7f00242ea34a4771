// Package seed 为本地开发写入一组示例内容，已有数据的表会被跳过。
package seed

import (
	"fmt"
	"time"

	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report 记录每个模块新写入的条数，跳过的模块不出现。
type Report map[string]int

type step struct {
	name  string
	model any
	run   func(gdb *gorm.DB) (int, error)
}

// Run 依次填充各模块。products 先于 cases 写入，案例会关联第一个产品。
func Run(gdb *gorm.DB, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	steps := []step{
		{"about", &db.About{}, seedAbout},
		{"home", &db.Home{}, seedHome},
		{"contact", &db.Contact{}, seedContacts},
		{"products", &db.Product{}, seedProducts},
		{"cases", &db.EngineeringCase{}, seedCases},
		{"news", &db.News{}, seedNews},
		{"materials", &db.Material{}, seedMaterials},
		{"testimonials", &db.Testimonial{}, seedTestimonials},
	}

	report := Report{}
	for _, s := range steps {
		var count int64
		if err := gdb.Model(s.model).Count(&count).Error; err != nil {
			return report, fmt.Errorf("count %s: %w", s.name, err)
		}
		if count > 0 {
			logger.Info("seed skipped, table not empty", zap.String("module", s.name), zap.Int64("rows", count))
			continue
		}

		created, err := s.run(gdb)
		if err != nil {
			return report, fmt.Errorf("seed %s: %w", s.name, err)
		}
		report[s.name] = created
		logger.Info("seed module done", zap.String("module", s.name), zap.Int("created", created))
	}
	return report, nil
}

func seedAbout(gdb *gorm.DB) (int, error) {
	svc := service.NewAboutService(gdb)
	inputs := []service.AboutInput{
		{
			Title:    service.StringPtr("公司简介"),
			Subtitle: service.StringPtr("专注暖通空调二十年"),
			Content:  service.StringPtr("我们是一家集研发、生产、销售与服务于一体的**暖通空调设备制造商**。"),
		},
		{
			Title:   service.StringPtr("发展历程"),
			Content: service.StringPtr("- 2005 年 公司成立\n- 2012 年 新厂区投产\n- 2020 年 通过 ISO 14001 认证"),
		},
		{
			Title:   service.StringPtr("资质荣誉"),
			Content: service.StringPtr("国家高新技术企业，拥有 60 余项专利。"),
		},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedHome(gdb *gorm.DB) (int, error) {
	svc := service.NewHomeService(gdb)
	inputs := []service.HomeInput{
		{
			Section:  service.StringPtr(db.HomeSectionBanner),
			Title:    service.StringPtr("高效节能 绿色未来"),
			Subtitle: service.StringPtr("磁悬浮变频离心机组全新上市"),
			ImageURL: service.StringPtr("/static/images/banner-1.jpg"),
			LinkURL:  service.StringPtr("/products"),
			LinkText: service.StringPtr("了解产品"),
		},
		{
			Section:     service.StringPtr(db.HomeSectionIntro),
			Title:       service.StringPtr("值得信赖的合作伙伴"),
			Description: service.StringPtr("服务客户超过 3000 家，项目遍布全国 30 个省市。"),
		},
		{
			Section:     service.StringPtr(db.HomeSectionFeature),
			Title:       service.StringPtr("全生命周期服务"),
			Description: service.StringPtr("从方案设计、安装调试到运维托管。"),
		},
		{
			Section:  service.StringPtr(db.HomeSectionCTA),
			Title:    service.StringPtr("获取专属解决方案"),
			LinkURL:  service.StringPtr("/contact"),
			LinkText: service.StringPtr("立即咨询"),
		},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedContacts(gdb *gorm.DB) (int, error) {
	svc := service.NewContactService(gdb)
	inputs := []service.ContactInput{
		{Type: service.StringPtr(db.ContactTypePhone), Label: service.StringPtr("销售热线"), Value: service.StringPtr("400-800-1234"), Link: service.StringPtr("tel:4008001234")},
		{Type: service.StringPtr(db.ContactTypeEmail), Label: service.StringPtr("商务邮箱"), Value: service.StringPtr("sales@example.com"), Link: service.StringPtr("mailto:sales@example.com")},
		{Type: service.StringPtr(db.ContactTypeAddress), Label: service.StringPtr("公司地址"), Value: service.StringPtr("江苏省苏州市工业园区星湖街 1 号")},
		{Type: service.StringPtr(db.ContactTypeWechat), Label: service.StringPtr("微信公众号"), Value: service.StringPtr("corpsite-hvac")},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedProducts(gdb *gorm.DB) (int, error) {
	svc := service.NewProductService(gdb)
	inputs := []service.ProductInput{
		{
			Name:        service.StringPtr("磁悬浮变频离心式冷水机组"),
			Model:       service.StringPtr("MC-1200"),
			Category:    service.StringPtr("冷水机组"),
			Summary:     service.StringPtr("无油运行，部分负荷 IPLV 高达 11.5"),
			Description: service.StringPtr("## 产品特点\n\n- 磁悬浮轴承，无机械摩擦\n- 全直流变频\n- 远程监控"),
			Specs:       &map[string]string{"制冷量": "1200kW", "能效等级": "一级"},
			IsFeatured:  service.BoolPtr(true),
		},
		{
			Name:       service.StringPtr("风冷螺杆式热泵机组"),
			Model:      service.StringPtr("AS-500"),
			Category:   service.StringPtr("热泵"),
			Summary:    service.StringPtr("冷暖两用，适合无冷却水条件的项目"),
			Specs:      &map[string]string{"制冷量": "500kW", "制热量": "530kW"},
			IsFeatured: service.BoolPtr(true),
		},
		{
			Name:     service.StringPtr("组合式空气处理机组"),
			Model:    service.StringPtr("AHU-30"),
			Category: service.StringPtr("末端设备"),
			Summary:  service.StringPtr("模块化箱体，满足洁净厂房需求"),
		},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedCases(gdb *gorm.DB) (int, error) {
	var product db.Product
	var productID *string
	if err := gdb.Order("sort_order asc").First(&product).Error; err == nil {
		productID = &product.ID
	}

	completed := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	svc := service.NewCaseService(gdb)
	inputs := []service.CaseInput{
		{
			Title:       service.StringPtr("某三甲医院中央空调节能改造"),
			Client:      service.StringPtr("市第一人民医院"),
			Location:    service.StringPtr("江苏 苏州"),
			ProductID:   productID,
			Summary:     service.StringPtr("改造后年节电 32%"),
			Content:     service.StringPtr("项目替换了 3 台老旧离心机，并接入能源管理平台。"),
			CompletedAt: &completed,
			IsFeatured:  service.BoolPtr(true),
		},
		{
			Title:    service.StringPtr("数据中心冷源系统"),
			Client:   service.StringPtr("某云计算公司"),
			Location: service.StringPtr("贵州 贵安"),
			Summary:  service.StringPtr("自然冷却 + 高效冷水机组"),
		},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedNews(gdb *gorm.DB) (int, error) {
	svc := service.NewNewsService(gdb)
	base := time.Now().AddDate(0, 0, -10)
	inputs := []service.NewsInput{
		{Title: service.StringPtr("公司亮相中国制冷展"), Category: service.StringPtr("公司新闻"), Content: service.StringPtr("本届展会我们展出了全新磁悬浮机组。")},
		{Title: service.StringPtr("新版能效标准解读"), Category: service.StringPtr("行业动态"), Content: service.StringPtr("## 主要变化\n\n能效限定值整体提升约 10%。")},
		{Title: service.StringPtr("春季设备保养提醒"), Category: service.StringPtr("服务通知"), Content: service.StringPtr("请在换季前完成冷却塔清洗与水质检测。")},
	}
	for i, input := range inputs {
		publishedAt := base.AddDate(0, 0, i*3)
		input.PublishedAt = &publishedAt
		input.Author = service.StringPtr("市场部")
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedMaterials(gdb *gorm.DB) (int, error) {
	svc := service.NewMaterialService(gdb)
	size := int64(2 << 20)
	inputs := []service.MaterialInput{
		{
			Title:    service.StringPtr("产品选型手册 2025"),
			Category: service.StringPtr("选型手册"),
			FileURL:  service.StringPtr("/static/uploads/catalog-2025.pdf"),
			FileType: service.StringPtr("application/pdf"),
			FileSize: &size,
		},
		{
			Title:    service.StringPtr("安装与维护说明"),
			Category: service.StringPtr("技术文档"),
			FileURL:  service.StringPtr("/static/uploads/installation-guide.pdf"),
			FileType: service.StringPtr("application/pdf"),
		},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}

func seedTestimonials(gdb *gorm.DB) (int, error) {
	svc := service.NewTestimonialService(gdb)
	inputs := []service.TestimonialInput{
		{AuthorName: service.StringPtr("王工"), AuthorTitle: service.StringPtr("机电总工"), Company: service.StringPtr("某建设集团"), Content: service.StringPtr("设备运行稳定，售后响应很快。"), IsFeatured: service.BoolPtr(true)},
		{AuthorName: service.StringPtr("李经理"), AuthorTitle: service.StringPtr("设施部经理"), Company: service.StringPtr("某电子厂"), Content: service.StringPtr("改造后电费明显下降。"), Rating: service.IntPtr(4), IsFeatured: service.BoolPtr(true)},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, err
		}
	}
	return len(inputs), nil
}
