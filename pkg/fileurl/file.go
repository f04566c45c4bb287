package fileurl

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsFile determines if the given path is a file
// IsFile 判断所给路径是否为文件
func IsFile(path string) bool {
	return !IsDir(path)
}

// IsExist checks if the file or directory exists
// IsExist 检查文件或目录是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directories for the given file path
// CreatePath 为所给文件路径创建父级目录
func CreatePath(dst string, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	if IsExist(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath gets the directory of the executable
// GetExePath 获取可执行文件所在目录
func GetExePath() string {
	exePath, err := os.Executable()
	if err != nil {
		dir, _ := os.Getwd()
		return dir
	}
	return filepath.Dir(exePath)
}

// PathSuffixCheckAdd appends the suffix to the path if it is not already present
// PathSuffixCheckAdd 如果路径尾部缺少后缀则补齐
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" {
		return path
	}
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}

// PathPrefixTrim removes a leading path separator so object-store keys stay relative
// PathPrefixTrim 去除前导路径分隔符，保证对象存储 key 为相对路径
func PathPrefixTrim(path string) string {
	return strings.TrimLeft(path, "/")
}
