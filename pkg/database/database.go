package database

import (
	"exam_coach_backend/internal/config"
	"exam_coach_backend/internal/model"
	"fmt"

	applog "exam_coach_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	applog.Log.Info("Database connection established")

	// release 模式下只有显式指定 -migrate 才迁移
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.ExamPaper{},
		&model.Question{},
		&model.ExamAttempt{},
		&model.LearningGap{},
		&model.DailyTask{},
		&model.UserAction{},
		&model.KnowledgePoint{},
	)
	if err != nil {
		return err
	}
	applog.Log.Info("Database migration completed")

	return seedKnowledgePoints(db)
}

// 默认知识点（表为空时写入）
func seedKnowledgePoints(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.KnowledgePoint{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []model.KnowledgePoint{
		{Code: "vocab_polysemy", Name: "熟词僻义", Category: model.GapVocab, Description: "常见词的非常用含义", Order: 1, Enabled: true},
		{Code: "vocab_collocation", Name: "固定搭配", Category: model.GapVocab, Description: "动词短语与介词搭配", Order: 2, Enabled: true},
		{Code: "vocab_synonym", Name: "近义词辨析", Category: model.GapVocab, Description: "意义相近词语的区别", Order: 3, Enabled: true},
		{Code: "vocab_word_formation", Name: "构词法", Category: model.GapVocab, Description: "前缀、后缀与词性转换", Order: 4, Enabled: true},
		{Code: "grammar_tense", Name: "时态", Category: model.GapGrammar, Description: "一般、进行、完成时态的用法", Order: 11, Enabled: true},
		{Code: "grammar_passive", Name: "被动语态", Category: model.GapGrammar, Description: "被动语态的构成与使用场景", Order: 12, Enabled: true},
		{Code: "grammar_clause", Name: "定语从句", Category: model.GapGrammar, Description: "关系代词与关系副词的选择", Order: 13, Enabled: true},
		{Code: "grammar_nonfinite", Name: "非谓语动词", Category: model.GapGrammar, Description: "不定式、动名词与分词", Order: 14, Enabled: true},
		{Code: "grammar_agreement", Name: "主谓一致", Category: model.GapGrammar, Description: "主语与谓语在数上的一致", Order: 15, Enabled: true},
		{Code: "logic_main_idea", Name: "主旨大意", Category: model.GapLogic, Description: "段落和篇章主旨的归纳", Order: 21, Enabled: true},
		{Code: "logic_inference", Name: "推理判断", Category: model.GapLogic, Description: "根据上下文进行合理推断", Order: 22, Enabled: true},
		{Code: "logic_detail", Name: "细节理解", Category: model.GapLogic, Description: "定位并理解原文细节", Order: 23, Enabled: true},
		{Code: "logic_connective", Name: "逻辑连接", Category: model.GapLogic, Description: "转折、因果、让步等关系词", Order: 24, Enabled: true},
	}
	if err := db.CreateInBatches(defaults, 50).Error; err != nil {
		applog.Log.Error("写入默认知识点失败", zap.Error(err))
		return err
	}
	return nil
}
